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

package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/mru-cleaner/pkg/errors"
)

// StrictDecodeFile decodes the toml file strictly. Any key of the file that
// does not map into cfg is an error, unless its top level name is listed in
// ignoreCheckItems.
func StrictDecodeFile(path, component string, cfg interface{}, ignoreCheckItems ...string) error {
	metaData, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.WrapError(errors.ErrInvalidConfig, err, path)
	}

	hasIgnoreItem := func(item []string) bool {
		for _, ignoreCheckItem := range ignoreCheckItems {
			if item[0] == ignoreCheckItem {
				return true
			}
		}
		return false
	}

	var unknown []string
	for _, item := range metaData.Undecoded() {
		if hasIgnoreItem(item) {
			continue
		}
		unknown = append(unknown, item.String())
	}
	if len(unknown) > 0 {
		return errors.ErrInvalidConfig.GenWithStackByArgs(
			component + "'s config file " + path +
				" contained unknown configuration options: " + strings.Join(unknown, ", "))
	}
	return nil
}

// ExpandHome replaces a leading "~" in path with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Trace(err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
