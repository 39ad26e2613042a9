package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"github.com/creativecommons/linkchecker/pkg/config"
	"github.com/creativecommons/linkchecker/pkg/logger"
	"github.com/creativecommons/linkchecker/pkg/report"
	"github.com/creativecommons/linkchecker/pkg/scan"
	"github.com/creativecommons/linkchecker/pkg/storage"
)

const defaultErrorLog = "errorlog.txt"

// outputFlag lets --output-error work both bare (default errorlog.txt) and
// with an explicit --output-error=FILE value. IsBoolFlag makes the flag
// package accept the bare form, which arrives here as the literal "true".
type outputFlag struct {
	enabled bool
	path    string
}

func (o *outputFlag) String() string { return o.path }

func (o *outputFlag) Set(v string) error {
	o.enabled = true
	if v == "" || v == "true" {
		o.path = defaultErrorLog
	} else {
		o.path = v
	}
	return nil
}

func (o *outputFlag) IsBoolFlag() bool { return true }

func main() {
	var verbose bool
	var output outputFlag
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.BoolVar(&verbose, "v", false, "increase verbosity of output")
	flag.BoolVar(&verbose, "verbose", false, "increase verbosity of output")
	flag.Var(&output, "output-error", "write all link errors to a file (default errorlog.txt)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("fatal: couldn't load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.InitLogger(cfg, verbose)

	rep := report.New(os.Stdout, verbose)
	if output.enabled {
		f, err := os.Create(output.path)
		if err != nil {
			slog.Error("fatal: couldn't create error log", slog.String("path", output.path), slog.Any("err", err))
			os.Exit(1)
		}
		defer f.Close()
		rep.SetErrorLog(f, output.path)
	}

	var store storage.Storage
	if cfg.DSN != "" {
		db, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			slog.Error("fatal: couldn't open database", slog.Any("err", err))
			os.Exit(1)
		}
		defer db.Close()

		if err := storage.RunMigrations(db); err != nil {
			slog.Error("fatal: failed to run migrations", "err", err)
			os.Exit(1)
		}

		store = storage.NewPostgresStorage(db)
	}

	s := scan.New(cfg, rep, store)

	broken, err := s.Run(context.Background())
	if err != nil {
		slog.Error("fatal: run failed", slog.Any("err", err))
		os.Exit(1)
	}

	rep.Summary()

	if broken {
		os.Exit(1)
	}
}
