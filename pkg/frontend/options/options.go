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

// Package options defines the configuration for the main http frontend
package options

import "time"

// DefaultListenPort is the tcp port the frontend listens on when none is
// configured
const DefaultListenPort = 8480

// Options is a collection of configurations for the main http frontend
type Options struct {
	// ListenAddress is the ip address for the main http listener
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is the tcp port for the main http listener
	ListenPort int `yaml:"listen_port,omitempty"`
	// TLSCertPath is the path to the tls certificate; tls serves when both
	// cert and key paths are set
	TLSCertPath string `yaml:"tls_cert_path,omitempty"`
	// TLSKeyPath is the path to the tls private key
	TLSKeyPath string `yaml:"tls_key_path,omitempty"`
	// ReadHeaderTimeout bounds how long the listener waits for request
	// headers
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout,omitempty"`
	// ShutdownTimeout bounds the graceful drain on shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// New returns an Options with the package defaults
func New() *Options {
	return &Options{
		ListenPort:        DefaultListenPort,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
	}
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	out := *o
	return &out
}

// ServeTLS reports whether the frontend is configured for tls
func (o *Options) ServeTLS() bool {
	return o.TLSCertPath != "" && o.TLSKeyPath != ""
}
