// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/devlab-hw/baro_station/internal/app"
	"github.com/devlab-hw/baro_station/internal/config"
	"github.com/devlab-hw/baro_station/internal/logging"
)

func main() {
	configPath := flag.String("config", "./baro_config.txt", "path to configuration file")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(config.Get().LogLevel)

	if err := app.RunProbe(log, os.Stdout); err != nil {
		log.Error("probe failed", "err", err)
		os.Exit(1)
	}
}
