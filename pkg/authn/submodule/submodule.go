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

// Package submodule defines the contract between the login pipeline and the
// stages that make up its ordered processing chain. Each stage inspects and
// mutates the shared authentication result, and either yields to the next
// stage or takes over the response.
package submodule

import (
	"net/http"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/directory"
	"github.com/sealgate/sealgate/pkg/engine"
	"github.com/sealgate/sealgate/pkg/resolver"
	"github.com/sealgate/sealgate/pkg/templates"
)

// Signal is a submodule's disposition for the remainder of the request
type Signal int

const (
	// SignalContinue passes control to the next submodule in the chain
	SignalContinue Signal = iota
	// SignalResponse indicates the submodule has produced the response and
	// the chain must stop
	SignalResponse
)

// Host is the pipeline surface exposed to submodules. Submodules never
// touch the session cookie directly; they go through the Host so the
// sealing and scoping rules live in one place.
type Host interface {
	// SaveSession seals the current authentication result back to the
	// client as the single sign-on cookie
	SaveSession(w http.ResponseWriter, ai *authn.Info) error
	// InvalidateSession overwrites the single sign-on cookie with the
	// invalid sentinel
	InvalidateSession(w http.ResponseWriter)
	// CookiePath returns the path scope of the pipeline's cookies
	CookiePath() string
}

// Submodule is one stage of the login chain. Run must not retain ai past
// its own invocation. Implementations are immutable after construction and
// safe for concurrent use.
type Submodule interface {
	Run(host Host, w http.ResponseWriter, r *http.Request,
		ai *authn.Info) (Signal, error)
}

// Lookup maps a configured submodule name to its constructed instance
type Lookup map[string]Submodule

// Deps carries the shared collaborators handed to submodule constructors
type Deps struct {
	// Templates renders the interactive pages
	Templates *templates.Engine
	// Engine is the authentication engine the pipeline fronts
	Engine engine.Engine
	// Resolver supplies attributes for authenticated principals; may be
	// nil when no resolver-backed submodule is configured
	Resolver resolver.Resolver
	// Directory validates credentials against an external directory; may
	// be nil when no directory-backed submodule is configured
	Directory directory.Validator
}
