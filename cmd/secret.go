package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/attendance-cli/internal/config"
	"github.com/spf13/cobra"
)

var errEmptySecretValue = errors.New("secret value must not be empty")

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage webhook URLs kept in the secret store",
	}

	cmd.AddCommand(newSecretSetCmd(app), newSecretRemoveCmd(app))
	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var key, value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a secret (pass first, file fallback)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				return errEmptySecretValue
			}
			if err := app.secretStore.Put(cmd.Context(), key, value); err != nil {
				return fmt.Errorf("store secret %q: %w", key, err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stored secret %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", config.DefaultRecorderRef, "Secret key")
	cmd.Flags().StringVar(&value, "value", "", "Secret value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSecretRemoveCmd(app *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Delete a secret from every backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("remove secret %q: %w", key, err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed secret %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", config.DefaultRecorderRef, "Secret key")

	return cmd
}
