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

// Package authz implements the authorization-gate submodule. For relying
// parties on the watch list it requires a resolved permission attribute to
// carry the configured grant value; denial clears the engine-side login
// session and ends the request with the denial page.
package authz

import (
	"net/http"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/engine"
	"github.com/sealgate/sealgate/pkg/errors"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	"github.com/sealgate/sealgate/pkg/templates"
	"github.com/sealgate/sealgate/pkg/util/sets"
)

// Provider is the registered name of this submodule implementation
const Provider = "authz"

// DefaultRequiredValue is the grant value expected from the permission
// attribute when none is configured
const DefaultRequiredValue = "1"

type authzSubmodule struct {
	name      string
	watched   sets.Set[string]
	attribute string
	required  string
	templates *templates.Engine
	engine    engine.Engine
}

// New returns an authorization-gate submodule. A permission attribute name
// is required; an empty watch list gates every relying party.
func New(o *options.Options, deps *submodule.Deps) (submodule.Submodule, error) {
	if o.PermissionAttribute == "" || deps == nil ||
		deps.Templates == nil || deps.Engine == nil {
		return nil, errors.ErrInvalidOptions
	}
	s := &authzSubmodule{
		name:      o.Name,
		attribute: o.PermissionAttribute,
		required:  o.RequiredValue,
		templates: deps.Templates,
		engine:    deps.Engine,
	}
	if s.required == "" {
		s.required = DefaultRequiredValue
	}
	if len(o.WatchedServices) > 0 {
		s.watched = sets.New(o.WatchedServices)
	}
	return s, nil
}

func (s *authzSubmodule) Run(_ submodule.Host, w http.ResponseWriter,
	r *http.Request, ai *authn.Info) (submodule.Signal, error) {
	if !ai.Authenticated() {
		return submodule.SignalContinue, nil
	}
	// a notice acknowledgment replays a request that already passed the
	// gate in this exchange
	if r.PostFormValue(authn.FieldNotifyAck) != "" {
		return submodule.SignalContinue, nil
	}
	var relyingParty string
	if ai.Request != nil {
		relyingParty = ai.Request.RelyingParty
	}
	if s.watched != nil && !s.watched.Contains(relyingParty) {
		return submodule.SignalContinue, nil
	}
	if ai.Attributes()[s.attribute] == s.required {
		return submodule.SignalContinue, nil
	}
	logger.Warn("access denied",
		logging.Pairs{"submodule": s.name, "username": ai.Username,
			"relyingParty": relyingParty, "attribute": s.attribute})
	s.engine.ClearLoginSession(w, r)
	d := templates.FromInfo(ai, r.URL.RequestURI())
	if err := s.templates.Render(w, templates.PageDenied, d); err != nil {
		return submodule.SignalContinue, err
	}
	return submodule.SignalResponse, nil
}
