//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package config loads the editor settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BlockSize    int    `yaml:"blockSize"`    // bytes per hex block
	BlocksPerRow int    `yaml:"blocksPerRow"` // hex blocks per row
	PluginDir    string `yaml:"pluginDir"`    // directory scanned for *.lsp plugins
	ReadOnly     bool   `yaml:"readOnly"`     // open buffers read-only
}

func Default() Config {
	return Config{
		BlockSize:    8,
		BlocksPerRow: 3,
		PluginDir:    "~/.hexed/plugins",
	}
}

// Load reads the settings file at path. A missing file yields the defaults;
// a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %v", path, err)
	}
	if cfg.BlockSize < 1 {
		return cfg, fmt.Errorf("blockSize must be positive, got %d", cfg.BlockSize)
	}
	if cfg.BlocksPerRow < 1 {
		return cfg, fmt.Errorf("blocksPerRow must be positive, got %d", cfg.BlocksPerRow)
	}
	return cfg, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) >= 2 && path[0:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
