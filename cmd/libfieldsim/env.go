// SPDX-License-Identifier: MIT

//go:build cgo

// Package: fieldsim/cmd/libfieldsim

package main

import (
	"os"

	"github.com/katalvlaran/fieldsim/facade"
	"github.com/katalvlaran/fieldsim/logging"
)

// Environment read once when the library is loaded.
const (
	envLogLevel  = "FIELDSIM_LOG_LEVEL"
	envLogFormat = "FIELDSIM_LOG_FORMAT"
)

// facadeOptions enables stderr logging when FIELDSIM_LOG_LEVEL is set.
// A host that sets nothing gets a silent library.
func facadeOptions() []facade.Option {
	return optionsFromEnv(os.Getenv)
}

func optionsFromEnv(getenv func(string) string) []facade.Option {
	level := getenv(envLogLevel)
	if level == "" {
		return nil
	}
	l, err := logging.New(level, getenv(envLogFormat), os.Stderr)
	if err != nil {
		return nil
	}

	return []facade.Option{facade.WithLogger(l)}
}
