package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/joanteresajose/reddit-persona/internal/api"
	"github.com/joanteresajose/reddit-persona/internal/collector"
	"github.com/joanteresajose/reddit-persona/internal/config"
	"github.com/joanteresajose/reddit-persona/internal/llm"
	"github.com/joanteresajose/reddit-persona/internal/persona"
	"github.com/joanteresajose/reddit-persona/internal/pipeline"
	"github.com/joanteresajose/reddit-persona/internal/reddit"
	"github.com/joanteresajose/reddit-persona/internal/storage"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the personad server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show personad system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func initLogging(level string) {
	logLevel := slog.LevelInfo
	if strings.EqualFold(level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})))
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "personad version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	initLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	files, err := storage.NewFileStore(cfg.Storage.ReportDir)
	if err != nil {
		return err
	}

	completer, err := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err != nil {
		return err
	}

	source := reddit.NewClient(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.Reddit.Username)
	extractor := pipeline.New(
		collector.New(source),
		persona.NewAnalyzer(completer),
		store,
		files,
	)

	handler := api.NewHandler(api.Deps{
		Extractor:      extractor,
		Store:          store,
		Files:          files,
		Token:          cfg.Server.APIToken,
		MaxExtractions: cfg.Server.MaxExtractions,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// MCP server on stdio alongside the HTTP API.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Extractor: extractor,
		Store:     store,
		Files:     files,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)
	go func() {
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)")

	errCh := make(chan error, 1)
	go func() {
		slog.Info("personad listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	printStatus("LLM model", "%s", cfg.LLM.Model)
	printStatus("Report dir", "%s", cfg.Storage.ReportDir)
	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
