package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notekeeper/internal/config"
	"notekeeper/internal/http"
	"notekeeper/internal/service"
	"notekeeper/internal/storage"
	"notekeeper/internal/viewsync"
	"notekeeper/internal/web"
)

var rootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "Notebooks and notes in the browser, stored in a single document.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notebook page and its API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored document as JSON",
	Long: `Loads the document from the configured slot store and writes it as JSON,
in the same format it is stored in. A document that does not exist yet is created empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return export(cmd.Context(), cmd.OutOrStdout())
	},
}

// app holds what both commands need: configuration, logger and the opened slot store.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	slots     storage.SlotStore
	closeLogs func() error
}

func setup(console io.Writer) (*app, error) {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, logCloser := newLogger(cfg, console)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	slots, err := storage.Open(cfg.StorageBackend, cfg.DBPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to open slot store: %w", err)
	}
	slog.Info("Slot store opened", "backend", cfg.StorageBackend, "path", cfg.DBPath)

	return &app{cfg: cfg, logger: logger, slots: slots, closeLogs: logCloser.Close}, nil
}

func (a *app) close() {
	if err := a.slots.Close(); err != nil {
		a.logger.Error("Failed to close slot store", "error", err)
	}
	_ = a.closeLogs()
}

func (a *app) store(ctx context.Context) (*service.Store, error) {
	return service.NewStore(ctx, a.slots,
		service.WithDocumentKey(a.cfg.DocumentKey),
		service.WithIDGenerator(service.NewIDGenerator(a.cfg.IDScheme, time.Now)),
		service.WithLogger(a.logger),
	)
}

func serve(ctx context.Context) error {
	a, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.store(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	slog.Info("Document store ready", "key", a.cfg.DocumentKey, "id_scheme", a.cfg.IDScheme)

	renderer := viewsync.NewRenderer(time.Now)
	sessions := viewsync.NewSessions(a.cfg.SessionTTL, func() *viewsync.Sync {
		return viewsync.New(store, renderer)
	})

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Store:     store,
		Themes:    service.NewThemes(a.slots),
		Sessions:  sessions,
		Slots:     a.slots,
		IndexHTML: web.IndexHTML(),
		Static:    web.Static(),
	})

	srv := &nethttp.Server{
		Addr:              ":" + a.cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// export logs to stderr so stdout carries only the document.
func export(ctx context.Context, stdout io.Writer) error {
	a, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.store(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	doc, err := store.Document(ctx)
	if err != nil {
		return err
	}
	data, err := service.EncodeDocument(doc)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if exportOutput != "" {
		return os.WriteFile(exportOutput, data, 0o644)
	}
	_, err = stdout.Write(data)
	return err
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the document to a file instead of stdout")
	rootCmd.AddCommand(serveCmd, exportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("notekeeper: %v", err)
	}
}
