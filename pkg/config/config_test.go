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
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sealgate/sealgate/pkg/errors"
)

const testYAML = `
main:
  instance_id: 1
frontend:
  listen_port: 9480
logging:
  log_level: debug
metrics:
  listen_port: 9481
sso:
  cookie_name: sg_sso
  path: /login
  lifetime: 8h
  secret: ${SEALGATE_TEST_SECRET}
  address_exclusions:
    - 10.0.0.0/8
  submodules:
    - cred
    - login
submodules:
  cred:
    provider: static
    users:
      jdoe: opensesame
  login:
    provider: form
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sealgate.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "expanded-secret")
	path := writeConfig(t, testYAML)
	c, flags, err := Load("sealgate", "test",
		[]string{"-config", path})
	if err != nil {
		t.Fatal(err)
	}
	if flags.ConfigPath != path {
		t.Errorf("unexpected config path %s", flags.ConfigPath)
	}
	if c.Frontend.ListenPort != 9480 || c.Metrics.ListenPort != 9481 {
		t.Error("listener ports not loaded")
	}
	if c.Logging.LogLevel != "debug" {
		t.Error("log level not loaded")
	}
	if string(c.SSO.Secret) != "expanded-secret" {
		t.Errorf("environment variable not expanded: %q", c.SSO.Secret)
	}
	if c.SSO.Lifetime != 8*time.Hour {
		t.Errorf("unexpected lifetime %v", c.SSO.Lifetime)
	}
	if len(c.SSO.Exclusions()) != 1 ||
		c.SSO.Exclusions()[0].String() != "10.0.0.0/8" {
		t.Error("address exclusions not compiled")
	}
	if c.Submodules["cred"].Provider != "static" ||
		c.Submodules["cred"].Name != "cred" {
		t.Error("submodule blocks not loaded")
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	path := writeConfig(t, testYAML)
	c, _, err := Load("sealgate", "test", []string{
		"-config", path, "-log-level", "warn", "-listen-port", "18480"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Logging.LogLevel != "warn" {
		t.Error("flag must override the configured log level")
	}
	if c.Frontend.ListenPort != 18480 {
		t.Error("flag must override the configured listen port")
	}
}

func TestValidateUnknownSubmoduleName(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	body := testYAML + `
`
	c := NewConfig()
	path := writeConfig(t, body)
	if err := c.loadFile(path); err != nil {
		t.Fatal(err)
	}
	c.SSO.Submodules = append(c.SSO.Submodules, "ghost")
	if err := c.Validate(); !goerrors.Is(err, errors.ErrUnknownSubmodule) {
		t.Errorf("expected ErrUnknownSubmodule, got %v", err)
	}
}

func TestValidateUnregisteredProvider(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	c := NewConfig()
	if err := c.loadFile(writeConfig(t, testYAML)); err != nil {
		t.Fatal(err)
	}
	c.Submodules["cred"].Provider = "imaginary"
	if err := c.Validate(); !goerrors.Is(err, errors.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestValidateMissingKey(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	c := NewConfig()
	if err := c.loadFile(writeConfig(t, testYAML)); err != nil {
		t.Fatal(err)
	}
	c.SSO.Secret = ""
	c.SSO.KeyFile = ""
	if err := c.Validate(); !goerrors.Is(err, errors.ErrInvalidKeyFile) {
		t.Errorf("expected ErrInvalidKeyFile, got %v", err)
	}
}

func TestValidateBadExclusion(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	c := NewConfig()
	if err := c.loadFile(writeConfig(t, testYAML)); err != nil {
		t.Fatal(err)
	}
	c.SSO.AddressExclusions = []string{"not-a-cidr"}
	if err := c.Validate(); !goerrors.Is(err, errors.ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestValidateDuplicateChainEntry(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	c := NewConfig()
	if err := c.loadFile(writeConfig(t, testYAML)); err != nil {
		t.Fatal(err)
	}
	c.SSO.Submodules = []string{"cred", "cred"}
	if err := c.Validate(); !goerrors.Is(err, errors.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load("sealgate", "test",
		[]string{"-config", "/nonexistent/sealgate.yaml"}); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadStrictRejectsUnknownKeys(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "s")
	path := writeConfig(t, testYAML+"\nbogus_section:\n  a: 1\n")
	if _, _, err := Load("sealgate", "test",
		[]string{"-config", path}); err == nil {
		t.Error("expected an error for unknown configuration keys")
	}
}

func TestPrintVersion(t *testing.T) {
	c, flags, err := Load("sealgate", "test", []string{"-version"})
	if err != nil {
		t.Fatal(err)
	}
	if c != nil || !flags.PrintVersion {
		t.Error("version flag must short-circuit loading")
	}
}
