package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/driver"
	"github.com/Dobios/circt/internal/observ"
	"github.com/Dobios/circt/internal/project"
)

var optCmd = &cobra.Command{
	Use:   "opt [flags] <file.fir|directory>",
	Short: "Run a pass pipeline over a hardware description",
	Long: `Opt parses a .fir file (or every .fir file in a directory), runs the
requested pass pipeline over each module, and prints the transformed IR.

The pipeline is taken from --pass flags, then from the [pipeline] section
of circt.toml, then defaults to foo-wires. Output goes to --output, then
to the manifest's [emit] dir, then to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpt,
}

func init() {
	optCmd.Flags().StringArray("pass", nil, "pass to run, repeatable, in pipeline order")
	optCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	optCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	optCmd.Flags().Bool("no-cache", false, "bypass the compile cache")
}

func runOpt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	passNames, err := cmd.Flags().GetStringArray("pass")
	if err != nil {
		return fmt.Errorf("failed to get pass flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	manifest := manifestFor(inputPath)
	if len(passNames) == 0 {
		passNames = pipelineFor(manifest)
	}
	emitDir := emitDirFor(manifest)

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("circt")
		if err != nil {
			// A missing cache dir degrades to uncached compiles.
			fmt.Fprintf(os.Stderr, "warning: cache unavailable: %v\n", err)
		}
	}

	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
	}

	opts := driver.Options{
		Passes:         passNames,
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
		Jobs:           jobs,
		Timer:          timer,
	}

	st, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	ctx := cmd.Context()
	hadErrors := false

	if st.IsDir() {
		if outputPath != "" {
			return errors.New("--output applies to single-file compiles; set [emit] dir in circt.toml for directories")
		}
		results, err := driver.CompileDir(ctx, inputPath, opts)
		if err != nil {
			return err
		}
		for _, res := range results {
			hadErrors = emitResult(cmd, res, emitPath(emitDir, res.Path)) || hadErrors
		}
	} else {
		res, err := driver.Compile(ctx, inputPath, opts)
		if err != nil {
			return err
		}
		dest := outputPath
		if dest == "" {
			dest = emitPath(emitDir, inputPath)
		}
		hadErrors = emitResult(cmd, res, dest)
	}

	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if hadErrors {
		return errors.New("compilation failed")
	}
	return nil
}

// emitResult renders diagnostics to stderr and the transformed IR to
// the requested destination. Returns true when the result has errors.
func emitResult(cmd *cobra.Command, res *driver.CompileResult, outputPath string) bool {
	if res.Bag.Len() > 0 && res.FileSet != nil {
		diag.Render(os.Stderr, res.Bag, res.FileSet, diag.RenderOpts{Color: useColor(cmd, os.Stderr)})
	}
	if res.Bag.HasErrors() {
		return true
	}
	if outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return true
		}
		if err := os.WriteFile(outputPath, []byte(res.Output), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return true
		}
		return false
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Output)
	return false
}

// manifestFor loads the nearest circt.toml above the input. Returns nil
// when there is none.
func manifestFor(inputPath string) *project.Manifest {
	dir := inputPath
	if st, err := os.Stat(inputPath); err == nil && !st.IsDir() {
		dir = filepath.Dir(inputPath)
	}
	manifest, err := project.Find(dir)
	if err != nil {
		return nil
	}
	return manifest
}

// pipelineFor resolves the default pipeline: the manifest's [pipeline]
// passes when present, otherwise foo-wires.
func pipelineFor(manifest *project.Manifest) []string {
	if manifest != nil && len(manifest.Pipeline.Passes) > 0 {
		return manifest.Pipeline.Passes
	}
	return []string{"foo-wires"}
}

// emitDirFor resolves the manifest's [emit] dir against the manifest
// root. Empty means emit to stdout.
func emitDirFor(manifest *project.Manifest) string {
	if manifest == nil || manifest.Emit.Dir == "" {
		return ""
	}
	if filepath.IsAbs(manifest.Emit.Dir) {
		return manifest.Emit.Dir
	}
	return filepath.Join(manifest.Root, manifest.Emit.Dir)
}

// emitPath places one compiled file under the emit dir, keeping the
// source file name. Empty when no emit dir is configured.
func emitPath(emitDir, srcPath string) string {
	if emitDir == "" {
		return ""
	}
	return filepath.Join(emitDir, filepath.Base(srcPath))
}
