package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/extsort/internal/config"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter config file.

By default the commented example config is written to the XDG config path.
With --effective the config currently in force (discovered file, defaults
and flags merged) is written instead.`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}
	cmd.Flags().String("path", "", "Destination (default: "+config.DefaultPath()+")")
	cmd.Flags().Bool("effective", false, "Write the merged effective config instead of the example")
	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = config.DefaultPath()
	}

	effective, _ := cmd.Flags().GetBool("effective")
	if effective {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Write(path); err != nil {
			return err
		}
	} else if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
