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

// Package config provides configuration abilities for the application,
// including parsing configuration files, command line parameters and
// environment variables, as well as default values and validation
package config

import (
	"fmt"
	"net/netip"
	"time"

	smopts "github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/authn/submodule/registry"
	"github.com/sealgate/sealgate/pkg/config/types"
	"github.com/sealgate/sealgate/pkg/engine/local"
	"github.com/sealgate/sealgate/pkg/errors"
	fropts "github.com/sealgate/sealgate/pkg/frontend/options"
	logopts "github.com/sealgate/sealgate/pkg/observability/logging/options"
	"github.com/sealgate/sealgate/pkg/util/sets"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Frontend provides configurations about the http front end
	Frontend *fropts.Options `yaml:"frontend,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *logopts.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for the metrics listener
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
	// SSO configures the sealed single sign-on layer and the submodule
	// chain order
	SSO *SSOConfig `yaml:"sso,omitempty"`
	// Submodules is the map of configured submodule blocks
	Submodules smopts.Lookup `yaml:"submodules,omitempty"`
	// Engine configures the stock local engine
	Engine *local.Options `yaml:"engine,omitempty"`
	// Resolver configures the static attribute resolver
	Resolver *ResolverConfig `yaml:"resolver,omitempty"`
	// Directory configures the static directory validator
	Directory *DirectoryConfig `yaml:"directory,omitempty"`
}

// MainConfig is a collection of general configuration values
type MainConfig struct {
	// InstanceID represents a unique ID for the current instance, when
	// multiple instances run on the same host
	InstanceID int `yaml:"instance_id,omitempty"`
	// PingHandlerPath provides the path to register the Ping Handler for
	// checking that the application is running
	PingHandlerPath string `yaml:"ping_handler_path,omitempty"`
	// ServerName represents the server name reported in logs; defaults to
	// os.Hostname
	ServerName string `yaml:"server_name,omitempty"`
}

// MetricsConfig is a collection of configurations for the metrics listener
type MetricsConfig struct {
	// ListenAddress is the ip address for the metrics http listener
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is the tcp port for the metrics http listener; 0 disables
	// the listener
	ListenPort int `yaml:"listen_port,omitempty"`
}

// SSOConfig configures the sealed session layer and the chain
type SSOConfig struct {
	// CookieName is the session cookie name
	CookieName string `yaml:"cookie_name,omitempty"`
	// Path is the login endpoint path and the scope of all cookies
	Path string `yaml:"path,omitempty"`
	// Lifetime is how long a sealed session stays valid
	Lifetime time.Duration `yaml:"lifetime,omitempty"`
	// KeyFile is the path to the sealing secret
	KeyFile types.EnvString `yaml:"key_file,omitempty"`
	// Secret is the sealing secret provided inline; KeyFile wins when both
	// are set
	Secret types.EnvString `yaml:"secret,omitempty"`
	// AddressExclusions lists client networks (CIDR) exempt from the
	// address match on recovery
	AddressExclusions []string `yaml:"address_exclusions,omitempty"`
	// Submodules is the ordered chain; each name must have a block in the
	// top-level submodules map
	Submodules []string `yaml:"submodules,omitempty"`
	// TemplatesDir optionally overrides the built-in page templates
	TemplatesDir string `yaml:"templates_dir,omitempty"`

	compiledExclusions []netip.Prefix
}

// Exclusions returns the parsed address exclusion networks; Validate must
// have run first
func (c *SSOConfig) Exclusions() []netip.Prefix {
	return c.compiledExclusions
}

// ResolverConfig configures the static attribute resolver
type ResolverConfig struct {
	// Attributes maps principal -> attribute name -> values
	Attributes map[string]map[string][]string `yaml:"attributes,omitempty"`
}

// DirectoryConfig configures the static directory validator
type DirectoryConfig struct {
	// Users maps usernames to passwords
	Users map[string]types.EnvString `yaml:"users,omitempty"`
	// Method is asserted on successful validation
	Method string `yaml:"method,omitempty"`
	// UnknownUserMessage is the failure text for an unrecognized username
	UnknownUserMessage string `yaml:"unknown_user_message,omitempty"`
	// BadPasswordMessage is the failure text for a rejected password
	BadPasswordMessage string `yaml:"bad_password_message,omitempty"`
}

// DefaultPingHandlerPath is the default path for the ping handler
const DefaultPingHandlerPath = "/ping"

// DefaultLoginPath is the default login endpoint path
const DefaultLoginPath = "/login"

// NewConfig returns a Config with all defaults set
func NewConfig() *Config {
	return &Config{
		Main: &MainConfig{
			PingHandlerPath: DefaultPingHandlerPath,
		},
		Frontend: fropts.New(),
		Logging:  logopts.New(),
		Metrics:  &MetricsConfig{},
		SSO: &SSOConfig{
			Path: DefaultLoginPath,
		},
		Submodules: make(smopts.Lookup),
	}
}

// Validate checks the configuration for fatal problems. It must run before
// the configuration is used.
func (c *Config) Validate() error {
	if c.SSO == nil || len(c.SSO.Submodules) == 0 {
		return fmt.Errorf("%w: no submodules configured",
			errors.ErrInvalidOptions)
	}
	if string(c.SSO.KeyFile) == "" && string(c.SSO.Secret) == "" {
		return fmt.Errorf("%w: no sealing key configured",
			errors.ErrInvalidKeyFile)
	}
	if err := c.Submodules.Validate(registry.IsRegistered); err != nil {
		return err
	}
	seen := sets.NewStringSet()
	for _, name := range c.SSO.Submodules {
		if _, ok := c.Submodules[name]; !ok {
			return fmt.Errorf("%w: %s", errors.ErrUnknownSubmodule, name)
		}
		if seen.Contains(name) {
			return fmt.Errorf("%w: %s listed twice",
				errors.ErrInvalidName, name)
		}
		seen.Add(name)
	}
	c.SSO.compiledExclusions = c.SSO.compiledExclusions[:0]
	for _, cidr := range c.SSO.AddressExclusions {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			return fmt.Errorf("%w: bad exclusion %s",
				errors.ErrInvalidOptions, cidr)
		}
		c.SSO.compiledExclusions = append(c.SSO.compiledExclusions, prefix)
	}
	return nil
}
