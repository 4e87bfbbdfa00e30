package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Long: `Print every configuration key with its current value, along with the
path of the config file. Use "countdown config set KEY VALUE" to change one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		values := config.Values(appConfig)

		fmt.Fprintf(out, "  Config file: %s\n\n", configPath)
		for _, key := range config.Keys() {
			fmt.Fprintf(out, "  %-26s %v\n", key, values[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(configPath, appConfig, key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s = %v\n", key, config.Values(appConfig)[key])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
