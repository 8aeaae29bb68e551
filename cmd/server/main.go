package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/microsql/microsql/internal"
	"github.com/microsql/microsql/internal/engine"
	"github.com/microsql/microsql/server/microwire"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	// a malformed snapshot is fatal; a missing one yields an empty database
	eng, err := engine.Open(cfg.Storage.Snapshot)
	if err != nil {
		log.Error("open database", "snapshot", cfg.Storage.Snapshot, "err", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen", "addr", addr, "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("microsql listening", "addr", addr, "snapshot", cfg.Storage.Snapshot, "tables", len(eng.ListTables()))

	srv := microwire.NewServer(eng, log)
	if err := srv.Serve(ctx, ln); err != nil {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
	log.Info("shut down")
}
