package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/subbridge/subbridge/internal/cli"
)

func init() {
	time.Local = time.UTC
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "subbridge",
		Short:        "Subbridge - storefront orders to subscriptions",
		Long:         `Subbridge turns paid storefront orders into subscriptions on the subscription service and resumes paused subscriptions.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cli.NewCreateCommand(),
		cli.NewResumeCommand(),
		cli.NewCustomerCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
