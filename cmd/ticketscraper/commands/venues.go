package commands

import (
	"github.com/spf13/cobra"

	"github.com/labrat-0/event-ticket-scraper/types"
)

var venuesFlags filterFlags

func init() {
	venuesFlags.register(venuesCmd.Flags(), false)
	rootCmd.AddCommand(venuesCmd)
}

var venuesCmd = &cobra.Command{
	Use:   "venues [--keyword <kw>] [filters...]",
	Short: "Searches venues.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := venuesFlags.actorInput(cmd.Flags(), types.ModeVenues)
		return execute(cmd.Context(), global, raw, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}
