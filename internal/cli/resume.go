package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/subbridge/subbridge/internal/app"
	"github.com/subbridge/subbridge/internal/service"
)

func NewResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <subscription-id>",
		Short: "Resume a paused subscription",
		Long:  `Ask the subscription service to renew the subscription with the given id.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runResume,
	}
}

func runResume(cmd *cobra.Command, args []string) error {
	var gateway service.SubscriptionGateway
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		return gateway.Resume(ctx, args[0])
	}, &gateway)
}
