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

// Package form implements the login-form submodule. It is the chain's
// fallback presenter: whenever the request reaches it without an
// authenticated result, it renders the credential form with any submitted
// username prefilled and the failure flags exposed for display.
package form

import (
	"net/http"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/errors"
	"github.com/sealgate/sealgate/pkg/templates"
)

// Provider is the registered name of this submodule implementation
const Provider = "form"

type formSubmodule struct {
	templates *templates.Engine
}

// New returns a login-form submodule
func New(_ *options.Options, deps *submodule.Deps) (submodule.Submodule, error) {
	if deps == nil || deps.Templates == nil {
		return nil, errors.ErrInvalidOptions
	}
	return &formSubmodule{templates: deps.Templates}, nil
}

func (s *formSubmodule) Run(_ submodule.Host, w http.ResponseWriter,
	r *http.Request, ai *authn.Info) (submodule.Signal, error) {
	if ai.Authenticated() {
		return submodule.SignalContinue, nil
	}
	// the form posts back to the full request uri so the engine's
	// parameters survive the submission
	d := templates.FromInfo(ai, r.URL.RequestURI())
	d.Username = r.PostFormValue(authn.FieldUsername)
	if err := s.templates.Render(w, templates.PageLogin, d); err != nil {
		return submodule.SignalContinue, err
	}
	return submodule.SignalResponse, nil
}
