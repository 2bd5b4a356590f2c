package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := SafeRender(renderWidth, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestRender_Blank(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \r\n"} {
		if out := Render(40, 2, []byte(input)); out != nil {
			t.Errorf("Render(%q) = %q, want nil", input, out)
		}
	}
}

func TestRender_IndentsAndKeepsText(t *testing.T) {
	out := string(Render(60, 4, []byte("Covers **astrogation** basics.\n\n- plotting\n- jumps\n")))
	if !strings.Contains(out, "astrogation") || !strings.Contains(out, "plotting") {
		t.Fatalf("rendered output lost text: %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "    ") {
			t.Errorf("line not indented: %q", line)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newlines to be trimmed")
	}
}
