package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the real-time notification service status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.connect(cmd)
			if err != nil {
				return err
			}
			st, err := api.WebsocketStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("notification status: %w", err)
			}

			state := "disconnected"
			if st.Connected {
				state = "connected"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notifications: %s, %d users, %d rooms\n", state, st.ConnectedUsers, st.ActiveRooms)
			return nil
		},
	}
}
