package commands

import (
	"github.com/spf13/cobra"

	"github.com/labrat-0/event-ticket-scraper/types"
)

var eventApiKey string

func init() {
	eventCmd.Flags().StringVar(&eventApiKey, "api-key", "", "Ticketmaster API key, defaults to $TICKETMASTER_API_KEY.")
	rootCmd.AddCommand(eventCmd)
}

var eventCmd = &cobra.Command{
	Use:   "event <id>",
	Short: "Looks up a single event by id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := map[string]any{
			"mode":    types.ModeGetEvent,
			"eventId": args[0],
		}
		if eventApiKey != "" {
			raw["apiKey"] = eventApiKey
		}
		return execute(cmd.Context(), global, raw, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}
