// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"strings"

	"github.com/pingcap/log"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// Config is the logging configuration.
type Config struct {
	Level string
	// File is the log file path; empty means stderr.
	File string
	// FileMaxSize is the max size (MB) of a log file before rotation.
	FileMaxSize int
}

// ParseLevel parses a textual log level such as "info" or "WARN".
func ParseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return lvl, errors.Annotatef(err, "invalid log level %q", level)
	}
	return lvl, nil
}

// InitLogger initializes the global pingcap/log logger.
func InitLogger(cfg *Config) error {
	level := cfg.Level
	if level == "" {
		level = DefaultLogLevel
	}
	if _, err := ParseLevel(level); err != nil {
		return err
	}

	logCfg := &log.Config{
		Level: strings.ToLower(level),
		File: log.FileLogConfig{
			Filename: cfg.File,
			MaxSize:  cfg.FileMaxSize,
		},
	}
	lg, props, err := log.InitLogger(logCfg, zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(lg, props)
	return nil
}
