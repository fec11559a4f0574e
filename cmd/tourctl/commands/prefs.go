package commands

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tourplan/internal/client"
)

func newPrefsCmd(newClient func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"p"},
		Short:   "Manage stored preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <user_id>",
		Short: "List stored preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Preferences(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), resp.Preferences)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <user_id> <session_id>",
		Short: "Store the preferences collected in a chat session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().SavePreferences(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), resp.Preferences)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <user_id> <field> <value>",
		Short: "Change a stored preference",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().SetPreference(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <user_id> <field>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored preference",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeletePreference(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted\n", args[1])
			return nil
		},
	})
	return cmd
}

func printPrefs(out io.Writer, prefs map[string]string) {
	if len(prefs) == 0 {
		fmt.Fprintln(out, "no preferences stored")
		return
	}
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, prefs[k])
	}
	w.Flush()
}
