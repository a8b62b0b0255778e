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

// Package resolver implements the attribute-resolution submodule. It fills
// the resolved attribute map for an authenticated principal, either by
// re-reading attributes replayed on a recovery form or by invoking the
// external attribute resolver.
package resolver

import (
	"net/http"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/errors"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	res "github.com/sealgate/sealgate/pkg/resolver"
)

// Provider is the registered name of this submodule implementation
const Provider = "resolver"

type resolverSubmodule struct {
	name       string
	resolver   res.Resolver
	attributes []string
}

// New returns an attribute-resolution submodule. The Deps must carry a
// non-nil Resolver.
func New(o *options.Options, deps *submodule.Deps) (submodule.Submodule, error) {
	if deps == nil || deps.Resolver == nil {
		return nil, errors.ErrInvalidOptions
	}
	return &resolverSubmodule{
		name:       o.Name,
		resolver:   deps.Resolver,
		attributes: o.Attributes,
	}, nil
}

func (s *resolverSubmodule) Run(_ submodule.Host, _ http.ResponseWriter,
	r *http.Request, ai *authn.Info) (submodule.Signal, error) {
	if ai.Username == "" {
		return submodule.SignalContinue, nil
	}
	// replayed attributes are trusted only when the form identity matches
	// the authenticated identity; the data is display-grade, not a
	// security decision input
	if r.PostFormValue(authn.FieldResolved) == ai.Username {
		attrs := ai.Attributes()
		for _, name := range s.attributes {
			if v := r.PostFormValue(name); v != "" {
				attrs[name] = v
			}
		}
		return submodule.SignalContinue, nil
	}
	var relyingParty string
	if ai.Request != nil {
		relyingParty = ai.Request.RelyingParty
	}
	resolved, err := s.resolver.Resolve(r.Context(), ai.Username,
		s.attributes, relyingParty)
	if err != nil {
		logger.Warn("attribute resolution failed",
			logging.Pairs{"submodule": s.name, "username": ai.Username,
				"detail": err.Error()})
		return submodule.SignalContinue, nil
	}
	attrs := ai.Attributes()
	for name, values := range resolved {
		if len(values) > 0 {
			attrs[name] = values[0]
		}
	}
	return submodule.SignalContinue, nil
}
