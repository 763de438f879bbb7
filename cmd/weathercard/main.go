// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the weathercard service.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wneessen/weathercard/internal/config"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	envPath := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// Environment from the .env file takes part in the config env lookup
	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to load env file", logger.Err(err), slog.String("file", *envPath))
		os.Exit(1)
	}

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	var opts []service.Option
	if conf.Output.Print {
		opts = append(opts, service.WithOutput(os.Stdout))
	}
	serv, err := service.New(conf, log, opts...)
	if err != nil {
		log.Error("failed to initialize weathercard service", logger.Err(err))
		os.Exit(1)
	}

	// Start the service loop
	log.Info("starting weathercard service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("weathercard service failed", logger.Err(err))
	}
	log.Info("shutting down weathercard service")
}

// loadConfig reads the config file given on the command line, the one in the default
// location or, if neither exists, the defaults and environment only.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weathercard", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
