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

package config

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pingcap/mru-cleaner/cmd/util"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/host/regfile"
	"github.com/pingcap/mru-cleaner/pkg/logutil"
)

const (
	// KindRegfile is a registry-style TOML MRU store.
	KindRegfile = "regfile"
	// KindMySQL is an MRU store kept in a MySQL table.
	KindMySQL   = "mysql"
)

// Config is the configuration of mru-cleaner.
type Config struct {
	LogLevel    string `toml:"log-level" json:"log-level"`
	LogFile     string `toml:"log-file" json:"log-file"`
	MetricsFile string `toml:"metrics-file" json:"metrics-file"`
	DryRun      bool   `toml:"dry-run" json:"dry-run"`

	Lists []ListConfig `toml:"lists" json:"lists"`
}

// ListConfig describes one host MRU list to prune.
type ListConfig struct {
	Name string `toml:"name" json:"name"`
	Kind string `toml:"kind" json:"kind"`

	// AllowDirectories keeps items that point at an existing directory.
	AllowDirectories bool `toml:"allow-directories" json:"allow-directories"`

	// regfile
	Path string `toml:"path" json:"path"`
	Key  string `toml:"key" json:"key"`

	// mysql
	DSN    string `toml:"dsn" json:"dsn"`
	ListID string `toml:"list-id" json:"list-id"`
}

// LoadConfig loads and validates the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := util.StrictDecodeFile(path, "mru-cleaner", cfg); err != nil {
		return nil, err
	}
	if err := cfg.ValidateAndAdjust(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateAndAdjust fills defaults and checks the configuration.
func (c *Config) ValidateAndAdjust() error {
	if c.LogLevel == "" {
		c.LogLevel = logutil.DefaultLogLevel
	}
	if _, err := logutil.ParseLevel(c.LogLevel); err != nil {
		return errors.WrapError(errors.ErrInvalidConfig, err, "log-level")
	}

	if len(c.Lists) == 0 {
		return invalid("at least one list must be configured")
	}
	seen := make(map[string]struct{}, len(c.Lists))
	for i := range c.Lists {
		l := &c.Lists[i]
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return invalid(fmt.Sprintf("lists[%d]: name is required", i))
		}
		if _, ok := seen[l.Name]; ok {
			return invalid(fmt.Sprintf("list '%s' is configured more than once", l.Name))
		}
		seen[l.Name] = struct{}{}
		if err := l.validateAndAdjust(); err != nil {
			return err
		}
	}
	return nil
}

func (l *ListConfig) validateAndAdjust() error {
	l.Kind = strings.ToLower(strings.TrimSpace(l.Kind))
	switch l.Kind {
	case KindRegfile:
		if strings.TrimSpace(l.Path) == "" {
			return invalid(fmt.Sprintf("list '%s': path is required", l.Name))
		}
		path, err := util.ExpandHome(strings.TrimSpace(l.Path))
		if err != nil {
			return errors.WrapError(errors.ErrInvalidConfig, err, fmt.Sprintf("list '%s': path", l.Name))
		}
		l.Path = path
		if l.Key == "" {
			l.Key = regfile.DefaultProjectsKey
		}
		if l.DSN != "" || l.ListID != "" {
			return invalid(fmt.Sprintf("list '%s': dsn and list-id are only valid for kind %s", l.Name, KindMySQL))
		}
	case KindMySQL:
		if l.DSN == "" {
			return invalid(fmt.Sprintf("list '%s': dsn is required", l.Name))
		}
		if _, err := mysql.ParseDSN(l.DSN); err != nil {
			return errors.WrapError(errors.ErrInvalidConfig, err, fmt.Sprintf("list '%s': dsn", l.Name))
		}
		if l.ListID == "" {
			l.ListID = l.Name
		}
		if l.Path != "" || l.Key != "" {
			return invalid(fmt.Sprintf("list '%s': path and key are only valid for kind %s", l.Name, KindRegfile))
		}
	case "":
		return invalid(fmt.Sprintf("list '%s': kind is required", l.Name))
	default:
		return invalid(fmt.Sprintf("list '%s': unsupported kind %s", l.Name, l.Kind))
	}
	return nil
}

func invalid(msg string) error {
	return errors.ErrInvalidConfig.GenWithStackByArgs(msg)
}
