// Package main runs the Human Design chart service:
// - HTTP API: chart calculation, gene key lookup, health/status
// - WebSocket: live transit broadcasting
// - Storage: gene key reference data (PostgreSQL), chart audit log (ClickHouse)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"humandesign/internal/api"
	"humandesign/internal/chart"
	"humandesign/internal/domain"
	"humandesign/internal/ephemeris"
	"humandesign/internal/genekeys"
	"humandesign/internal/storage"
	chstore "humandesign/internal/storage/clickhouse"
	"humandesign/internal/storage/memory"
	"humandesign/internal/storage/migrations"
	pgstore "humandesign/internal/storage/postgres"
	"humandesign/internal/transit"
)

// allStores holds all storage implementations.
type allStores struct {
	geneKeyStore    storage.GeneKeyStore
	chartAuditStore storage.ChartAuditStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("HTTP_ADDR", ":5001"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	ephePath := flag.String("ephe-path", os.Getenv("EPHE_PATH"), "Directory with precise ephemeris data files")
	geneKeysCSV := flag.String("genekeys-csv", envOr("GENEKEYS_CSV", "64.csv"), "Gene keys reference CSV file")
	derivation := flag.String("center-derivation", envOr("CENTER_DERIVATION", "channels"), "Center derivation mode (channels, simulated)")
	transitInterval := flag.Duration("transit-interval", time.Minute, "Transit broadcast interval")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	centerDerivation, err := parseDerivation(*derivation)
	if err != nil {
		logger.Fatalf("Invalid --center-derivation: %v", err)
	}

	// Probe ephemeris data
	precision := ephemeris.Probe(*ephePath)
	logger.Printf("Ephemeris precision: %s", precision)
	if precision == domain.PrecisionAnalytic && *ephePath != "" {
		logger.Printf("Missing ephemeris data files in %s: %v", *ephePath, ephemeris.MissingDataFiles(*ephePath))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Build components
	provider := ephemeris.NewAnalyticProvider()
	builder := chart.NewBuilder(chart.Options{
		Ephemeris:  provider,
		Precision:  precision,
		Derivation: centerDerivation,
		Logger:     log.New(os.Stdout, "[chart] ", log.LstdFlags),
	})

	loader := genekeys.NewLoader(*geneKeysCSV, stores.geneKeyStore,
		log.New(os.Stdout, "[genekeys] ", log.LstdFlags))

	transitConfig := transit.DefaultConfig()
	transitConfig.Interval = *transitInterval
	broadcaster := transit.NewBroadcaster(provider, precision, transitConfig,
		log.New(os.Stdout, "[transit] ", log.LstdFlags))
	broadcaster.Start()
	defer broadcaster.Stop()

	server := api.NewServer(api.Options{
		Builder:   builder,
		GeneKeys:  loader,
		Audits:    stores.chartAuditStore,
		Transits:  broadcaster,
		Precision: precision,
		Logger:    logger,
	})

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Run HTTP server until cancelled
	err = server.ListenAndServe(ctx, *addr)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// parseDerivation validates the center derivation flag.
func parseDerivation(value string) (domain.CenterDerivation, error) {
	switch domain.CenterDerivation(value) {
	case domain.DeriveFromChannels:
		return domain.DeriveFromChannels, nil
	case domain.DeriveSimulated:
		return domain.DeriveSimulated, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want channels or simulated)", value)
	}
}

// createStores creates all required stores, running migrations for the
// database-backed configuration.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			geneKeyStore:    memory.NewGeneKeyStore(),
			chartAuditStore: memory.NewChartAuditStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	// ClickHouse
	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	stores := &allStores{
		geneKeyStore:    pgstore.NewGeneKeyStore(pool),
		chartAuditStore: chstore.NewChartAuditStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// envOr returns the environment variable value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
