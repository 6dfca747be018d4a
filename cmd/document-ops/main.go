// Command document-ops runs the document operations MCP server over stdio or
// HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"document-ops-server/internal/config"
	"document-ops-server/internal/filesystem"
	"document-ops-server/internal/mcp"
	"document-ops-server/internal/service"
	"document-ops-server/internal/transport"
)

func main() {
	// Protocol traffic owns stdout on the stdio transport, so logs always go
	// to stderr.
	logger := log.New(os.Stderr, "document-ops: ", log.LstdFlags)

	// A missing .env file is fine; it only seeds DOCOPS_* variables.
	_ = godotenv.Load()

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		logger.Fatalf("configuration error: %v", err)
	}

	svc, err := service.NewDefaultDocumentService(filesystem.NewDefaultAdapter(), logger, cfg)
	if err != nil {
		logger.Fatalf("initializing service: %v", err)
	}
	processor, err := mcp.NewProcessor(svc, logger)
	if err != nil {
		logger.Fatalf("initializing processor: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportStdio:
		runStdio(ctx, processor, logger)
	case config.TransportHTTP:
		runHTTP(ctx, processor, svc, logger, cfg)
	}
}

func runStdio(ctx context.Context, processor *mcp.Processor, logger *log.Logger) {
	t, err := transport.NewStdioTransport(processor, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatalf("initializing stdio transport: %v", err)
	}
	logger.Printf("stdio transport started")
	if err := t.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("stdio transport: %v", err)
	}
	logger.Printf("stdio transport stopped")
}

func runHTTP(ctx context.Context, processor *mcp.Processor, svc service.DocumentOperationService, logger *log.Logger, cfg *config.Config) {
	t, err := transport.NewHTTPTransport(processor, svc, logger, cfg)
	if err != nil {
		logger.Fatalf("initializing http transport: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- t.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("http transport: %v", err)
		}
	case <-ctx.Done():
		logger.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := t.Shutdown(shutdownCtx); err != nil {
			logger.Printf("ERROR: shutdown: %v", err)
		}
		<-errCh
	}
	logger.Printf("http transport stopped")
}
