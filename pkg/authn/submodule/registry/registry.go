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

// Package registry aggregates the available submodule providers and
// constructs instances by provider name
package registry

import (
	"fmt"

	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/authn/submodule/providers/authz"
	"github.com/sealgate/sealgate/pkg/authn/submodule/providers/directory"
	"github.com/sealgate/sealgate/pkg/authn/submodule/providers/form"
	"github.com/sealgate/sealgate/pkg/authn/submodule/providers/notify"
	"github.com/sealgate/sealgate/pkg/authn/submodule/providers/resolver"
	"github.com/sealgate/sealgate/pkg/authn/submodule/providers/static"
	"github.com/sealgate/sealgate/pkg/errors"
)

// NewSubmoduleFunc constructs a Submodule from its options and shared deps
type NewSubmoduleFunc func(*options.Options,
	*submodule.Deps) (submodule.Submodule, error)

// this map is the one and only place to aggregate registered providers
var registry = map[string]NewSubmoduleFunc{
	static.Provider:    static.New,
	directory.Provider: directory.New,
	resolver.Provider:  resolver.New,
	authz.Provider:     authz.New,
	notify.Provider:    notify.New,
	form.Provider:      form.New,
}

// New constructs a submodule instance for the named provider
func New(o *options.Options, deps *submodule.Deps) (submodule.Submodule, error) {
	if o == nil {
		return nil, errors.ErrInvalidOptions
	}
	if f, ok := registry[o.Provider]; ok && f != nil {
		return f(o, deps)
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrInvalidProvider, o.Provider)
}

// IsRegistered reports whether the named provider is available
func IsRegistered(provider string) bool {
	_, ok := registry[provider]
	return ok
}
