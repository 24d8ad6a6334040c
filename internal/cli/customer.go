package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/subbridge/subbridge/internal/app"
	"github.com/subbridge/subbridge/internal/domain/customer"
)

var (
	customerEmail    string
	stripeCustomerID string
)

func NewCustomerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the local customer store",
	}

	cmd.AddCommand(newLinkCommand())

	return cmd
}

func newLinkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link an email to a Stripe customer",
		Long:  `Store the Stripe customer id for an email so orders from it skip the Stripe search.`,
		RunE:  runLink,
	}

	cmd.Flags().StringVar(&customerEmail, "email", "", "Customer email (required)")
	cmd.Flags().StringVar(&stripeCustomerID, "stripe-customer", "", "Stripe customer id (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("stripe-customer")

	return cmd
}

func runLink(cmd *cobra.Command, _ []string) error {
	var repo customer.Repository
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		c := &customer.Customer{Email: customerEmail, StripeCustomerID: stripeCustomerID}
		if err := repo.Upsert(ctx, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "linked %s to %s\n", c.Email, c.StripeCustomerID)
		return nil
	}, &repo)
}
