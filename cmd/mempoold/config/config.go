// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the mempoold flag set and resolves it, together with
// any config file and environment variables, into a Config the daemon can
// run with.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vtjl10/sequencer/mempool"
)

const (
	VersionKey = "version"

	LogFileKey      = "log-file"
	LogVerbosityKey = "log-verbosity"
	LogVmoduleKey   = "log-vmodule"

	ListenAddrKey  = "listen-addr"
	MetricsAddrKey = "metrics-addr"

	GasPriceThresholdKey    = "gas-price-threshold"
	FeeEscalationEnabledKey = "fee-escalation-enabled"
	FeeEscalationPercentKey = "fee-escalation-percent"

	ConfigFileKey = "config-file"
)

// Version is stamped at build time via -ldflags; left as a placeholder
// default otherwise.
var Version = "dev"

// BuildFlagSet declares every mempoold flag and its default.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("mempoold", pflag.ContinueOnError)

	fs.Bool(VersionKey, false, "print the version and exit")
	fs.String(ConfigFileKey, "", "path to a YAML/TOML/JSON config file")

	fs.String(LogFileKey, "", "if set, write logs to this file (rotated) instead of stderr")
	fs.Int(LogVerbosityKey, 0, "glog-style verbosity ceiling; records below this level are dropped unless a vmodule rule overrides them")
	fs.String(LogVmoduleKey, "", "glog-style per-package verbosity overrides, e.g. \"mempool=2,config=0\"")

	fs.String(ListenAddrKey, "127.0.0.1:8645", "gateway RPC address, reported in the startup log; mempoold itself does not listen on it")
	fs.String(MetricsAddrKey, "127.0.0.1:9645", "address the Prometheus /metrics endpoint listens on")

	fs.String(GasPriceThresholdKey, "0", "initial gas-price threshold below which queued transactions are held back, in wei")
	fs.Bool(FeeEscalationEnabledKey, true, "whether a resubmission at the same nonce must escalate its fee to replace the pending transaction")
	fs.Uint8(FeeEscalationPercentKey, 10, "minimum percentage increase a replacement must clear on both tip and max L2 gas price")

	return fs
}

// BuildViper parses args against fs and layers a config file (if named) and
// MEMPOOLD_-prefixed environment variables on top.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("MEMPOOLD")
	v.AutomaticEnv()

	if configFile := v.GetString(ConfigFileKey); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", configFile, err)
		}
	}

	return v, nil
}

// Config is the fully resolved daemon configuration.
type Config struct {
	LogFile      string
	LogVerbosity int
	LogVmodule   string

	ListenAddr  string
	MetricsAddr string

	Mempool           mempool.Config
	GasPriceThreshold string
}

// BuildConfig validates v's values and assembles a Config.
func BuildConfig(v *viper.Viper) (Config, error) {
	percent := v.GetUint(FeeEscalationPercentKey)
	if percent > 100 {
		return Config{}, fmt.Errorf("%s must be between 0 and 100, got %d", FeeEscalationPercentKey, percent)
	}

	return Config{
		LogFile:      v.GetString(LogFileKey),
		LogVerbosity: v.GetInt(LogVerbosityKey),
		LogVmodule:   v.GetString(LogVmoduleKey),
		ListenAddr:   v.GetString(ListenAddrKey),
		MetricsAddr:  v.GetString(MetricsAddrKey),
		Mempool: mempool.Config{
			EnableFeeEscalation:     v.GetBool(FeeEscalationEnabledKey),
			FeeEscalationPercentage: uint8(percent),
		},
		GasPriceThreshold: v.GetString(GasPriceThresholdKey),
	}, nil
}