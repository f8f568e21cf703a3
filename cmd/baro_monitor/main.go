// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/devlab-hw/baro_station/internal/app"
	"github.com/devlab-hw/baro_station/internal/config"
	"github.com/devlab-hw/baro_station/internal/logging"
)

func main() {
	configPath := flag.String("config", "./baro_config.txt", "path to configuration file")
	samples := flag.Int("samples", 0, "number of samples to print, 0 runs until interrupted")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(config.Get().LogLevel)
	log.Info("starting baro_station monitor (ICP-10111 → stdout)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunMonitor(ctx, log, os.Stdout, *samples); err != nil {
		log.Error("fatal", "err", err)
		stop()
		os.Exit(1)
	}
}
