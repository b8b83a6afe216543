package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/driver"
	"github.com/Dobios/circt/internal/fir"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.fir>",
	Short: "Parse a hardware description and dump its IR",
	Long:  `Parse checks a .fir file syntactically and prints the IR without running any passes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "text", "output format (text|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diag.Render(os.Stderr, result.Bag, result.FileSet,
			diag.RenderOpts{Color: useColor(cmd, os.Stderr)})
	}
	if result.Bag.HasErrors() || result.Circuit == nil {
		return errors.New("parse failed")
	}

	switch format {
	case "text":
		fmt.Fprint(cmd.OutOrStdout(), fir.Print(result.Circuit))
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(parseSummary(result.Circuit))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

type moduleSummary struct {
	Name  string `json:"name"`
	Ports int    `json:"ports"`
	Ops   int    `json:"ops"`
}

type circuitSummary struct {
	Circuit string          `json:"circuit"`
	Modules []moduleSummary `json:"modules"`
}

func parseSummary(c *fir.Circuit) circuitSummary {
	out := circuitSummary{Circuit: c.Name}
	for _, m := range c.Modules {
		out.Modules = append(out.Modules, moduleSummary{
			Name:  m.Name,
			Ports: len(m.Ports),
			Ops:   fir.CountOps(m),
		})
	}
	return out
}
