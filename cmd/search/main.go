// Command search loads a CSV document collection and starts the
// interactive query shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/ingest"
	"github.com/McSimik/inf-search/internal/repl"
	"github.com/McSimik/inf-search/internal/search"
	"github.com/McSimik/inf-search/pkg/config"
	"github.com/McSimik/inf-search/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	csvPath := flag.String("csv", "", "path to the CSV document collection")
	maxRows := flag.Int("max-rows", 0, "maximum CSV rows to load")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *csvPath != "" {
		cfg.Ingest.CSVPath = *csvPath
	}
	if *maxRows > 0 {
		cfg.Ingest.CSVMaxRows = *maxRows
	}
	if cfg.Ingest.CSVPath == "" {
		fmt.Fprintln(os.Stderr, "no CSV collection given: use -csv or set ingest.csvPath")
		os.Exit(1)
	}

	// Log lines go to stderr so the prompt stream stays clean.
	logger.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := search.NewEngine(index.New(), nil, nil)

	loader := ingest.NewCSVLoader(cfg.Ingest.CSVPath, cfg.Ingest.CSVMaxRows, cfg.Ingest.CSVSep())
	indexed, err := loader.LoadInto(ctx, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load collection: %v\n", err)
		os.Exit(1)
	}
	if indexed > 0 {
		fmt.Println("successful download")
	}

	shell := repl.New(engine, os.Stdin, os.Stdout)
	if err := shell.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "shell error: %v\n", err)
		os.Exit(1)
	}
}
