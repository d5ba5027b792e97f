package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "github.com/PabloGalante/cbt-notebook/internal/adapters/http"
	"github.com/PabloGalante/cbt-notebook/internal/adapters/storage/memory"
	"github.com/PabloGalante/cbt-notebook/internal/app/journal"
	"github.com/PabloGalante/cbt-notebook/internal/app/pga"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides config)")
	serveCmd.Flags().Int("seed", 0, "Number of sample entries to load at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := observability.WithFields(zap.String("component", "server"), zap.String("mode", string(cfg.Mode)))
	defer func() { _ = log.Sync() }()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openCredentialStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	defer func() { _ = closeStore() }()

	journalSvc := journal.NewService(memory.NewEntryStore())
	if n, _ := cmd.Flags().GetInt("seed"); n > 0 {
		journalSvc.SeedSamples(ctx, n)
	}

	creds := credentialSource(cfg, store)
	handler := httpadapter.NewServer(httpadapter.Deps{
		Journal:         journalSvc,
		Goals:           pga.NewService(memory.NewGoalStore()),
		Analysis:        newAnalysisService(cfg, creds),
		Credentials:     creds,
		CredentialStore: store,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("credential_store", cfg.CredentialStore),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("server stopped")
	return nil
}
