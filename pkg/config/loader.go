/*
 * Copyright 2024 The Sealgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Load returns the application configuration, starting with a default
// config, overriding with the provided config file, and finally with flags
func Load(applicationName, applicationVersion string,
	arguments []string) (*Config, *Flags, error) {
	c := NewConfig()
	flags, err := parseFlags(applicationName, arguments)
	if err != nil {
		return nil, flags, err
	}
	if flags.PrintVersion {
		return nil, flags, nil
	}
	if flags.ConfigPath != "" {
		if err := c.loadFile(flags.ConfigPath); err != nil {
			return nil, flags, err
		}
	}
	c.loadFlags(flags)
	if err := c.Validate(); err != nil {
		return nil, flags, err
	}
	return c, flags, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(b, c)
}
