package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDirsUseHome(t *testing.T) {
	home := filepath.Join("/tmp", "test-home")
	t.Setenv("HOME", home)

	cases := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"home", HomeDir, home},
		{"state", DefaultStateDir, filepath.Join(home, ".local", "state", "academy")},
		{"config", DefaultConfigDir, filepath.Join(home, ".config", "academy")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir, err := tc.fn()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if dir != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, dir)
			}
		})
	}
}

func TestWorkingDirReturnsCurrentDir(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)

	resolved, err := WorkingDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolved != workDir {
		t.Fatalf("expected %s, got %s", workDir, resolved)
	}
}

func TestResolveWithDefault(t *testing.T) {
	t.Run("returns override when provided", func(t *testing.T) {
		result, err := ResolveWithDefault("/custom/path", DefaultStateDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result != "/custom/path" {
			t.Fatalf("expected /custom/path, got %s", result)
		}
	})

	t.Run("propagates error from default function", func(t *testing.T) {
		_, err := ResolveWithDefault("", func() (string, error) {
			return "", os.ErrNotExist
		})
		if err != os.ErrNotExist {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestExpandHome(t *testing.T) {
	home := filepath.Join("/tmp", "test-home")
	t.Setenv("HOME", home)

	cases := map[string]string{
		"~":                  home,
		"~/catalog.toml":     filepath.Join(home, "catalog.toml"),
		"/abs/catalog.toml":  "/abs/catalog.toml",
		"rel/~/catalog.toml": "rel/~/catalog.toml",
		"~other/catalog":     "~other/catalog",
	}
	for in, want := range cases {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
