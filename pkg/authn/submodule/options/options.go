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

// Package options defines the configuration block for a single login
// submodule instance
package options

import (
	"fmt"
	"time"

	"github.com/sealgate/sealgate/pkg/authn/classify"
	"github.com/sealgate/sealgate/pkg/config/types"
	"github.com/sealgate/sealgate/pkg/errors"
)

// Options is a per-submodule configuration block. Provider selects the
// implementation; the remaining fields apply only to the providers that
// document them.
type Options struct {
	// Name is the key under which this block appears in the configuration;
	// populated during config processing rather than unmarshaled
	Name string `yaml:"-"`

	// Provider is the registered submodule implementation name
	Provider string `yaml:"provider,omitempty"`

	// static provider: inline username -> credential manifest, or a
	// credentials file in htpasswd or csv format, plus the method the
	// provider asserts on success
	Users     map[string]types.EnvString `yaml:"users,omitempty"`
	UsersFile string                     `yaml:"users_file,omitempty"`
	Method    string                     `yaml:"method,omitempty"`

	// directory provider: identity normalization and failure-text
	// classification
	StripDomainSuffix string             `yaml:"strip_domain_suffix,omitempty"`
	Classify          *classify.Matchers `yaml:"classify,omitempty"`

	// resolver provider: attribute names to resolve
	Attributes []string `yaml:"attributes,omitempty"`

	// authz provider: relying parties subject to the gate (empty watches
	// all), and the attribute/value pair that grants access
	WatchedServices     []string `yaml:"watched_services,omitempty"`
	PermissionAttribute string   `yaml:"permission_attribute,omitempty"`
	RequiredValue       string   `yaml:"required_value,omitempty"`

	// notify provider: expiration attribute and notice cadence
	ExpiryAttribute       string        `yaml:"expiry_attribute,omitempty"`
	ActiveDirectoryFormat bool          `yaml:"active_directory_format,omitempty"`
	Window                time.Duration `yaml:"window,omitempty"`
	Interval              time.Duration `yaml:"interval,omitempty"`
	CookieName            string        `yaml:"cookie_name,omitempty"`
	DateFormat            string        `yaml:"date_format,omitempty"`
}

// Lookup maps a submodule name to its options block
type Lookup map[string]*Options

// New returns an Options with the package defaults
func New() *Options {
	return &Options{}
}

// Clone returns an exact deep copy of the Options
func (o *Options) Clone() *Options {
	out := *o
	if o.Users != nil {
		out.Users = make(map[string]types.EnvString, len(o.Users))
		for k, v := range o.Users {
			out.Users[k] = v
		}
	}
	if o.Classify != nil {
		out.Classify = o.Classify.Clone()
	}
	out.Attributes = append([]string(nil), o.Attributes...)
	out.WatchedServices = append([]string(nil), o.WatchedServices...)
	return &out
}

// Validate confirms each block names a registered provider. isRegistered is
// supplied by the registry to avoid an import cycle with the providers.
func (l Lookup) Validate(isRegistered func(string) bool) error {
	for name, o := range l {
		if o == nil || o.Provider == "" {
			return fmt.Errorf("%w: submodule %s", errors.ErrInvalidProvider,
				name)
		}
		o.Name = name
		if !isRegistered(o.Provider) {
			return fmt.Errorf("%w: submodule %s provider %s",
				errors.ErrInvalidProvider, name, o.Provider)
		}
	}
	return nil
}
