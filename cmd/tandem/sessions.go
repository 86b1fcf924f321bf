package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandem-agent/tandem/pkg/session"
)

func newSessionsCmd() *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List saved sessions",
		RunE: func(_ *cobra.Command, _ []string) error {
			infos, err := session.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No saved sessions.")
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s  %s  %d messages\n",
					info.ID, info.ModTime.Format("2006-01-02 15:04"), info.Messages)
			}
			return nil
		},
	}

	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print the messages of a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			messages, err := session.LoadMessages(args[0])
			if err != nil {
				return err
			}
			for _, msg := range messages {
				fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
			}
			return nil
		},
	})

	return sessionsCmd
}
