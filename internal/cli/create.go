package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/subbridge/subbridge/internal/app"
	"github.com/subbridge/subbridge/internal/domain/order"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/service"
)

var orderPath string

func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subscription from an order",
		Long:  `Read a storefront order payload as JSON and create the matching subscription. Use "-" to read the order from stdin.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&orderPath, "order", "o", "-", "Path to the order JSON, or - for stdin")

	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	o, err := readOrder(orderPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var gateway service.SubscriptionGateway
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		return gateway.Create(ctx, o)
	}, &gateway)
}

// readOrder loads an order from path, or from stdin when path is "-"
func readOrder(path string, stdin io.Reader) (*order.Order, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not read order from %s", path).
			Mark(ierr.ErrValidation)
	}
	return order.Parse(data)
}
