package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/devcmd/internal/telemetry"
	"github.com/aledsdavies/devcmd/runtime/detect"
	"github.com/aledsdavies/devcmd/runtime/mask"
	"github.com/aledsdavies/devcmd/runtime/sketch"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Scan a JSON file for defects and print masked sketches",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

// sketchCmd is an alias of scan, kept for parity with the original CLI's
// separate sketch_mode entry point.
var sketchCmd = &cobra.Command{
	Use:   "sketch <file>",
	Short: "Alias of scan",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	start := time.Now()
	sketches := detect.Scan(string(content))
	telemetry.ScanResult(string(content), sketches, time.Since(start))

	masked := make([]*sketch.Sketch, len(sketches))
	for i := range sketches {
		masked[i] = mask.Envelope(&sketches[i])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(masked)
}
