package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/staffbook/staffql/internal/config"
	"github.com/staffbook/staffql/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Creates staffql.toml (or the file given with --config) holding the default
settings, with the store URI taken from --store or MONGO_URI when given.`,
	Annotations: map[string]string{skipStore: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			overwrite := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", configPath)).
				Affirmative("Yes").
				Negative("No").
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Println("Cancelled")
				return nil
			}
		}

		if err := writeConfig(configPath, cfg.Store); err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.Success.Render("Wrote"), ui.Bold.Render(configPath))
		return nil
	},
}

// writeConfig saves the default config with the given store settings.
func writeConfig(path string, st config.StoreConfig) error {
	c := config.Default()
	c.Store = st
	if err := c.Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file without asking")
	rootCmd.AddCommand(initCmd)
}
