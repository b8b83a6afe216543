package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantPasses []string
		wantDir    string
		wantErr    bool
	}{
		{
			name: "full manifest",
			content: `[pipeline]
passes = ["drop-nodes", "foo-wires"]

[emit]
dir = "build"
`,
			wantPasses: []string{"drop-nodes", "foo-wires"},
			wantDir:    "build",
		},
		{
			name:       "missing pipeline section",
			content:    "[emit]\ndir = \"out\"\n",
			wantPasses: nil,
			wantDir:    "out",
		},
		{
			name:       "empty file",
			content:    "",
			wantPasses: nil,
		},
		{
			name:    "malformed toml",
			content: "[pipeline\npasses = oops",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			m, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(tt.wantPasses, m.Pipeline.Passes); diff != "" {
				t.Errorf("passes mismatch (-want +got):\n%s", diff)
			}
			if m.Emit.Dir != tt.wantDir {
				t.Errorf("emit dir = %q, want %q", m.Emit.Dir, tt.wantDir)
			}
		})
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[pipeline]\npasses = [\"foo-wires\"]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(m.Pipeline.Passes) != 1 || m.Pipeline.Passes[0] != "foo-wires" {
		t.Errorf("passes = %v", m.Pipeline.Passes)
	}
}

func TestFind_NoManifest(t *testing.T) {
	_, err := Find(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("err = %v, want ErrNoManifest", err)
	}
}
