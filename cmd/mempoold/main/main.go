// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/vtjl10/sequencer/cmd/mempoold/config"
	"github.com/vtjl10/sequencer/log"
	"github.com/vtjl10/sequencer/mempool"
)

func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	if v.GetBool(config.VersionKey) {
		fmt.Printf("%s\n", config.Version)
		os.Exit(0)
	}

	cfg, err := config.BuildConfig(v)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	if err := setupLogging(cfg); err != nil {
		fmt.Printf("invalid logging configuration: %s\n", err)
		os.Exit(1)
	}

	threshold, err := uint256.FromDecimal(cfg.GasPriceThreshold)
	if err != nil {
		log.Error("invalid gas price threshold", "value", cfg.GasPriceThreshold, "err", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	m := mempool.NewSyncWithMetrics(cfg.Mempool, threshold, mempool.NewMetricsWithRegisterer(registry))
	log.Info("mempool engine initialized",
		"feeEscalation", cfg.Mempool.EnableFeeEscalation,
		"feeEscalationPercent", cfg.Mempool.FeeEscalationPercentage,
		"gasPriceThreshold", threshold.String(),
	)
	_ = m // the engine is driven by the gateway that embeds mempoold; this
	// daemon's job is to host it and serve its metrics.

	go serveMetrics(cfg.MetricsAddr, registry)

	log.Info("mempoold is running", "listenAddr", cfg.ListenAddr, "metricsAddr", cfg.MetricsAddr)
	waitForShutdown()
}

func setupLogging(cfg config.Config) error {
	var handler slog.Handler
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		handler = slog.NewTextHandler(rotator, nil)
	} else {
		handler = log.NewTerminalHandler(os.Stderr, log.IsTerminal(os.Stderr))
	}

	glog := log.NewGlogHandler(handler)
	glog.Verbosity(slog.Level(cfg.LogVerbosity))
	if cfg.LogVmodule != "" {
		if err := glog.Vmodule(cfg.LogVmodule); err != nil {
			return err
		}
	}

	log.SetDefault(log.NewLogger(glog))
	return nil
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server exited", "err", err)
	}
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
}
