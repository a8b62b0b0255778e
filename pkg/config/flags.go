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

import "flag"

// Flags holds the values of flags provided on the command line
type Flags struct {
	// PrintVersion indicates whether to print the version and exit
	PrintVersion bool
	// ConfigPath is the path to the configuration file
	ConfigPath string
	// LogLevel overrides the configured logging level
	LogLevel string
	// ListenAddress overrides the configured frontend listen address
	ListenAddress string
	// ListenPort overrides the configured frontend listen port
	ListenPort int
	// MetricsPort overrides the configured metrics listen port
	MetricsPort int
}

func parseFlags(applicationName string, arguments []string) (*Flags, error) {
	flags := &Flags{}
	fs := flag.NewFlagSet(applicationName, flag.ContinueOnError)
	fs.BoolVar(&flags.PrintVersion, "version", false,
		"Prints the application version and exits")
	fs.StringVar(&flags.ConfigPath, "config", "",
		"Path to the configuration file")
	fs.StringVar(&flags.LogLevel, "log-level", "",
		"Level of logging to output (e.g., debug, info, warn, error)")
	fs.StringVar(&flags.ListenAddress, "listen-address", "",
		"Address on which the frontend listens")
	fs.IntVar(&flags.ListenPort, "listen-port", 0,
		"Port on which the frontend listens")
	fs.IntVar(&flags.MetricsPort, "metrics-port", 0,
		"Port on which the metrics endpoint listens")
	if err := fs.Parse(arguments); err != nil {
		return flags, err
	}
	return flags, nil
}

// loadFlags applies parsed flag values over the loaded configuration
func (c *Config) loadFlags(flags *Flags) {
	if flags.LogLevel != "" {
		c.Logging.LogLevel = flags.LogLevel
	}
	if flags.ListenAddress != "" {
		c.Frontend.ListenAddress = flags.ListenAddress
	}
	if flags.ListenPort > 0 {
		c.Frontend.ListenPort = flags.ListenPort
	}
	if flags.MetricsPort > 0 {
		c.Metrics.ListenPort = flags.MetricsPort
	}
}
