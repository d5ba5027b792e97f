package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/cbt-notebook/internal/adapters/credential"
	"github.com/PabloGalante/cbt-notebook/internal/config"
	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

var errNoWritableStore = errors.New("credential_store is \"none\"; set the key through the environment instead")

var apiKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the stored Gemini API key",
}

var apiKeySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCredentialStore(cmd, func(ctx context.Context, _ *config.Config, store domain.CredentialStore) error {
			return setAPIKey(ctx, cmd.OutOrStdout(), store, args[0])
		})
	},
}

var apiKeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCredentialStore(cmd, func(ctx context.Context, _ *config.Config, store domain.CredentialStore) error {
			return clearAPIKey(ctx, cmd.OutOrStdout(), store)
		})
	},
}

var apiKeyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an API key is available",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCredentialStore(cmd, func(ctx context.Context, cfg *config.Config, store domain.CredentialStore) error {
			printAPIKeyStatus(ctx, cmd.OutOrStdout(), credential.NewEnv(cfg.APIKeyEnv...), store)
			return nil
		})
	},
}

func init() {
	apiKeyCmd.AddCommand(apiKeySetCmd)
	apiKeyCmd.AddCommand(apiKeyClearCmd)
	apiKeyCmd.AddCommand(apiKeyStatusCmd)
}

func withCredentialStore(cmd *cobra.Command, fn func(context.Context, *config.Config, domain.CredentialStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := openCredentialStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	defer func() { _ = closeStore() }()

	return fn(ctx, cfg, store)
}

func setAPIKey(ctx context.Context, out io.Writer, store domain.CredentialStore, key string) error {
	if store == nil {
		return errNoWritableStore
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key must not be blank")
	}
	if err := store.Save(ctx, key); err != nil {
		return fmt.Errorf("saving API key: %w", err)
	}
	fmt.Fprintln(out, "API key saved")
	return nil
}

func clearAPIKey(ctx context.Context, out io.Writer, store domain.CredentialStore) error {
	if store == nil {
		return errNoWritableStore
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing API key: %w", err)
	}
	fmt.Fprintln(out, "API key cleared")
	return nil
}

// printAPIKeyStatus never prints the key itself.
// The environment wins over the stored key, as in credentialSource.
func printAPIKeyStatus(ctx context.Context, out io.Writer, env domain.CredentialSource, store domain.CredentialStore) {
	_, fromEnv := env.Lookup(ctx)
	stored := false
	if store != nil {
		_, stored = store.Lookup(ctx)
	}

	ok := color.New(color.FgGreen)
	missing := color.New(color.FgYellow)
	switch {
	case fromEnv:
		ok.Fprintln(out, "API key: configured (environment)")
	case stored:
		ok.Fprintln(out, "API key: configured (stored)")
	default:
		missing.Fprintln(out, "API key: not configured")
	}
}
