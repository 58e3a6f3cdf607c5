package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "att",
		Short:         "Attendance CLI (att): validate shift logins, breaks and logouts",
		Long:          "att checks attendance events against a shift schedule, records them to a spreadsheet webhook, and serves an HTTP intake for chat bot front ends.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(os.Stderr)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newScheduleCmd(app),
		newCheckCmd(app),
		newServeCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}
