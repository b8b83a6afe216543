package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dobios/circt/internal/project"
)

const optSample = `circuit Top:
  module Top:
    input clk : Clock
    output out : UInt<8>
    wire a : UInt<8>
    out <= a
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out strings.Builder
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	rootCmd.SetArgs(nil)
	return out.String(), err
}

func TestPipelineFor(t *testing.T) {
	if got := pipelineFor(nil); len(got) != 1 || got[0] != "foo-wires" {
		t.Errorf("pipelineFor(nil) = %v, want the foo-wires default", got)
	}
	m := &project.Manifest{Pipeline: project.Pipeline{Passes: []string{"drop-nodes", "foo-wires"}}}
	if got := pipelineFor(m); len(got) != 2 || got[0] != "drop-nodes" {
		t.Errorf("pipelineFor(manifest) = %v, want the manifest pipeline", got)
	}
}

func TestEmitDirFor(t *testing.T) {
	if got := emitDirFor(nil); got != "" {
		t.Errorf("emitDirFor(nil) = %q, want empty", got)
	}
	rel := &project.Manifest{Root: "/proj", Emit: project.Emit{Dir: "build"}}
	if got := emitDirFor(rel); got != filepath.Join("/proj", "build") {
		t.Errorf("relative emit dir = %q, want it joined to the manifest root", got)
	}
	abs := &project.Manifest{Root: "/proj", Emit: project.Emit{Dir: "/tmp/out"}}
	if got := emitDirFor(abs); got != "/tmp/out" {
		t.Errorf("absolute emit dir = %q, want it kept as-is", got)
	}
}

func TestEmitPath(t *testing.T) {
	if got := emitPath("", "/src/top.fir"); got != "" {
		t.Errorf("emitPath without a dir = %q, want empty (stdout)", got)
	}
	if got := emitPath("/out", "/src/top.fir"); got != filepath.Join("/out", "top.fir") {
		t.Errorf("emitPath = %q, want the source name under the emit dir", got)
	}
}

func TestOpt_EmitDirFromManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "[emit]\ndir = \"out\"\n"
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "top.fir")
	if err := os.WriteFile(src, []byte(optSample), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = optCmd.Flags().Set("no-cache", "false") })

	if out, err := runCLI(t, "opt", "--no-cache", src); err != nil {
		t.Fatalf("opt: %v\n%s", err, out)
	}

	emitted, err := os.ReadFile(filepath.Join(dir, "out", "top.fir"))
	if err != nil {
		t.Fatalf("emit dir output missing: %v", err)
	}
	if !strings.Contains(string(emitted), "wire foo_0 : UInt<8>") {
		t.Errorf("emitted output missing renamed wire:\n%s", emitted)
	}
}

func TestOpt_OutputFlagRejectedForDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "top.fir"), []byte(optSample), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = optCmd.Flags().Set("output", "") })

	_, err := runCLI(t, "opt", "--output", filepath.Join(dir, "x.fir"), dir)
	if err == nil || !strings.Contains(err.Error(), "single-file") {
		t.Fatalf("err = %v, want --output rejected for directory input", err)
	}
}
