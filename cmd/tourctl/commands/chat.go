package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tourplan/internal/client"
)

const chatHelp = `Type your trip details. Commands:
  /save <user_id>  store the collected preferences
  /clear           start the conversation over
  /quit            exit`

func newChatCmd(newClient func() *client.Client) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:     "chat",
		Aliases: []string{"c"},
		Short:   "Chat with the assistant to collect trip preferences",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, newClient(), sessionID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "resume an existing session")
	return cmd
}

func runChat(cmd *cobra.Command, c *client.Client, sessionID string, in io.Reader, out io.Writer) error {
	ctx := cmd.Context()
	fmt.Fprintln(out, chatHelp)

	announced := false
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/clear":
			if sessionID != "" {
				if err := c.ResetSession(ctx, sessionID); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
			}
			sessionID, announced = "", false
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		case strings.HasPrefix(line, "/save"):
			userID := strings.TrimSpace(strings.TrimPrefix(line, "/save"))
			if userID == "" || sessionID == "" {
				fmt.Fprintln(out, "usage: /save <user_id> (after chatting)")
				continue
			}
			saved, err := c.SavePreferences(ctx, userID, sessionID)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Saved %d preferences for %s.\n", len(saved.Preferences), saved.UserID)
			continue
		}

		resp, err := c.Interact(ctx, sessionID, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		sessionID = resp.SessionID
		fmt.Fprintf(out, "assistant> %s\n", resp.Response)
		if resp.Complete && !announced {
			announced = true
			fmt.Fprintf(out, "(session %s) Save with /save <user_id>, then run: tourctl optimize <user_id>\n", sessionID)
		}
	}
}
