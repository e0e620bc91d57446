package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/errors"
)

// ConfigCmd groups configuration inspection commands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage TripGenie configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration",
	Long:  `Print the effective configuration after merging config files and environment variables. Secrets are redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		redacted := *cfg
		redacted.Google.APIKey = redactSecret(cfg.Google.APIKey)
		redacted.OpenRouter.APIKey = redactSecret(cfg.OpenRouter.APIKey)

		output, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format configuration")
		}
		fmt.Println(string(output))
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}

func redactSecret(s string) string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}
