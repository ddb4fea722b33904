package commands

import (
	"github.com/spf13/cobra"

	"github.com/labrat-0/event-ticket-scraper/config"
)

var runInput string

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "input.json5", "Actor input file; <name>.local.<ext> overrides it.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--input <path/to/input.json5>]",
	Short: "Runs the scraper with a full actor input object.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := config.ReadInput(runInput)
		if err != nil {
			return err
		}
		return execute(cmd.Context(), global, raw, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}
