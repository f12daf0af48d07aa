package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settingsCmd prints the active analysis settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the active analysis settings",
	Long: `Print the settings the analysis commands run with: defaults, overridden
by a settings.yaml in ~/.qpcr or the working directory, overridden by flags`,
	Run: func(cmd *cobra.Command, args []string) {
		b, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
		if err == nil {
			fmt.Println(string(b))
		}
	},
}

func init() {
	RootCmd.AddCommand(settingsCmd)
}
