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

// Package engine defines the boundary with the external authentication
// engine that invoked the login pipeline. The engine supplies the login
// request descriptor and takes over response generation once the pipeline
// completes or fails.
package engine

import (
	"net/http"
	"time"

	"github.com/sealgate/sealgate/pkg/authn"
)

// Engine is the external authentication engine contract
type Engine interface {
	// LoginRequest returns the login request descriptor associated with
	// the inbound request, or nil when none exists
	LoginRequest(r *http.Request) *authn.LoginRequest
	// CompleteLogin hands the authenticated principal, method and instant
	// back to the engine, which generates the response
	CompleteLogin(w http.ResponseWriter, r *http.Request,
		username, method string, instant time.Time)
	// FailLogin hands a failure back to the engine for re-presentation
	FailLogin(w http.ResponseWriter, r *http.Request, err error)
	// ClearLoginSession discards any engine-side state associated with
	// the login request
	ClearLoginSession(w http.ResponseWriter, r *http.Request)
}
