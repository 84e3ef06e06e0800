package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/devcmd/runtime/keystore"
)

var showFull bool

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Inspect the local repair-session keystore",
}

var keystorePutCmd = &cobra.Command{
	Use:   "put <id> <value>",
	Short: "Store a secret under id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := keystore.NewFile(cfg.KeystorePath)
		if err != nil {
			return err
		}
		if err := ks.Put(cmd.Context(), args[0], []byte(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])
		return nil
	},
}

var keystoreGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a secret by id, masked unless --show is given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := keystore.NewFile(cfg.KeystorePath)
		if err != nil {
			return err
		}
		value, err := ks.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if showFull {
			fmt.Fprintln(cmd.OutOrStdout(), string(value))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), maskValue(value))
		return nil
	},
}

var keystoreDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a secret by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := keystore.NewFile(cfg.KeystorePath)
		if err != nil {
			return err
		}
		if err := ks.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func maskValue(value []byte) string {
	if len(value) <= 4 {
		return "****"
	}
	return fmt.Sprintf("****%s", value[len(value)-4:])
}

func init() {
	keystoreGetCmd.Flags().BoolVar(&showFull, "show", false, "print the full unmasked value")
	keystoreCmd.AddCommand(keystorePutCmd, keystoreGetCmd, keystoreDeleteCmd)
}
