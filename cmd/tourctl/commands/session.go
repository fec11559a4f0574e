package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tourplan/internal/client"
)

func newSessionCmd(newClient func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Inspect or clear chat sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <session_id>",
		Short: "Show collected data and transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newClient().Session(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s (%s)\n", sess.SessionID, sess.Status)
			d := sess.CollectedData
			for _, f := range []struct {
				name string
				val  *string
			}{
				{"city", d.City},
				{"budget", d.Budget},
				{"interests", d.Interests},
				{"start_time", d.StartTime},
				{"end_time", d.EndTime},
			} {
				v := "-"
				if f.val != nil {
					v = *f.val
				}
				fmt.Fprintf(out, "  %-10s %s\n", f.name, v)
			}
			for _, t := range sess.History {
				fmt.Fprintf(out, "%s> %s\n", t.Role, t.Content)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <session_id>",
		Short: "Discard a session's state and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().ResetSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	})
	return cmd
}
