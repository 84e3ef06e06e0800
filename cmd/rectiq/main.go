package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/devcmd/internal/config"
	"github.com/aledsdavies/devcmd/internal/telemetry"
)

// Build-time variables, set via ldflags.
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

var (
	cfg          config.Config
	endpointFlag string
	keystoreFlag string
	debug        bool
)

func main() {
	telemetry.Init()
	defer telemetry.InstallPanicHook()()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rectiq",
	Short: "Detect and repair malformed JSON without a full parser",
	Long: `rectiq scans JSON payloads for structural defects (duplicate keys,
trailing commas, circular $ref chains, and more) and can request a masked
repair from the rectiq service. Nothing unmasked ever leaves the process.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.FromEnv()
		config.ApplyFlag(&cfg.Endpoint, endpointFlag, cmd.Flags().Changed("endpoint"))
		config.ApplyFlag(&cfg.KeystorePath, keystoreFlag, cmd.Flags().Changed("keystore"))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rectiq %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "repair service endpoint (overrides RECTIQ_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&keystoreFlag, "keystore", "", "keystore file path (overrides RECTIQ_KEYSTORE_PATH)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "accepted but has no effect on output")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(sketchCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(keystoreCmd)
	rootCmd.AddCommand(versionCmd)
}
