package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tourplan/internal/client"
)

func newWeatherCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:     "weather <city>",
		Aliases: []string{"w"},
		Short:   "Show current weather for a city",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Weather(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, resp.Weather, "", "  "); err != nil {
				pretty.Reset()
				pretty.Write(resp.Weather)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}

func newOptimizeCmd(newClient func() *client.Client) *cobra.Command {
	var budget, timeWindow string

	cmd := &cobra.Command{
		Use:     "optimize [user_id]",
		Aliases: []string{"plan"},
		Short:   "Generate an itinerary from stored preferences",
		Long:    "Generate an itinerary from stored preferences. user_id may be omitted when --token identifies the user.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID string
			if len(args) == 1 {
				userID = args[0]
			}
			constraints := map[string]any{}
			if budget != "" {
				constraints["budget"] = budget
			}
			if timeWindow != "" {
				constraints["time"] = timeWindow
			}

			resp, err := newClient().Optimize(cmd.Context(), userID, constraints)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", resp.Message, resp.OptimizedItinerary)
			return nil
		},
	}
	cmd.Flags().StringVar(&budget, "budget", "", "budget constraint")
	cmd.Flags().StringVar(&timeWindow, "time", "", "time window constraint, e.g. \"9 AM - 6 PM\"")
	return cmd
}
