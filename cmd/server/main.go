// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for the aicore-bridge server.
// The server is the local companion of an IDE coding-assistant extension:
// it discovers usable models from an AI Core tenant and serves them to the
// extension's settings panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/aicore-bridge/internal/api"
	"github.com/traylinx/aicore-bridge/internal/buildinfo"
	"github.com/traylinx/aicore-bridge/internal/config"
	"github.com/traylinx/aicore-bridge/internal/discovery"
	"github.com/traylinx/aicore-bridge/internal/logging"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to the YAML config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("aicore-bridge %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)
		return
	}

	// .env is optional; credentials can come from the environment or the
	// config file.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", *configPath, err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if err = logging.ConfigureLogOutput(cfg.LoggingToFile, cfg.LogDir); err != nil {
		log.Fatalf("Failed to configure log output: %v", err)
	}

	discoverer, err := discovery.NewDiscoverer(cfg.CacheDir)
	if err != nil {
		log.Fatalf("Failed to initialize discovery: %v", err)
	}

	server := api.NewServer(cfg, discoverer)

	watcher := config.NewWatcher(*configPath, func(reloaded *config.Config) {
		log.Info("Applying reloaded configuration")
		server.OnConfigReload(reloaded)
	})
	if err = watcher.Start(); err != nil {
		log.Warnf("Config watcher unavailable: %v", err)
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting aicore-bridge %s", buildinfo.Version)
	if err = server.Run(ctx); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
	log.Info("Server stopped")
}
