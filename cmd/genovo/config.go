package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbethune/genovo/internal/config"
)

// newConfigCmd mirrors cmd/vibe-vep/config.go's command shape, delegating
// to internal/config instead of calling viper directly.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage genovo configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.genovo.yaml.",
		Example: `  genovo config                             # show all config
  genovo config set scaling-factor 1.2      # set the default scaling factor
  genovo config get scaling-factor          # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	out, err := config.Show()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runConfigSet(key, value string) error {
	path, err := config.Set(key, value)
	if err != nil {
		return err
	}
	fmt.Printf("Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigGet(key string) error {
	val, err := config.Get(key)
	if err != nil {
		return err
	}
	fmt.Println(val)
	return nil
}
