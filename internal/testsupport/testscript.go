package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce   sync.Once
	academyPath string
	buildErr    error
)

// BuildAcademy builds the academy binary once and returns its path.
func BuildAcademy(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "academy-bin-")
		if err != nil {
			buildErr = err
			return
		}

		academyPath = filepath.Join(binDir, "academy")
		cmd := exec.Command("go", "build", "-o", academyPath, "./cmd/academy")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build academy: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return academyPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("ACADEMY", BuildAcademy(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdProgressHas checks that a progress.json file lists a code under the
// given key, or does not when negated.
func CmdProgressHas(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 3 {
		ts.Fatalf("usage: progresshas FILE KEY CODE")
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &record); err != nil {
		ts.Fatalf("parse progress file: %v", err)
	}

	var codes []string
	if raw, ok := record[args[1]]; ok {
		if err := json.Unmarshal(raw, &codes); err != nil {
			ts.Fatalf("parse %s: %v", args[1], err)
		}
	}

	found := false
	for _, code := range codes {
		if code == args[2] {
			found = true
			break
		}
	}
	if found == neg {
		if neg {
			ts.Fatalf("%s unexpectedly lists %s", args[1], args[2])
		}
		ts.Fatalf("%s does not list %s (have %v)", args[1], args[2], codes)
	}
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
