package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/interview-ai/pkg/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved settings",
		Long: `Show the effective configuration or persist app_mode and app_settings.

Examples:
  interview-ai config show
  interview-ai config set app_mode meeting
  interview-ai config set app_settings.streaming false
  interview-ai config save`,
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd(), newConfigSaveCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API keys are never shown)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(currentConfig())
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set app_mode or an app_settings.* key and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.Set(args[0], args[1]); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Saved %s = %s to %s", args[0], args[1], m.Path()))
			return nil
		},
	}
}

func newConfigSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the current app_mode and app_settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			cfg := currentConfig()
			if err := m.SaveSettings(cfg.AppMode, cfg.AppSettings); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Saved settings to %s", m.Path()))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Path())
			return nil
		},
	}
}

func manager() (*config.Manager, error) {
	if configManager != nil {
		return configManager, nil
	}
	return config.NewManager("")
}
