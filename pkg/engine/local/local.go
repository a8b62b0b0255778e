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

// Package local implements a self-contained authentication engine for
// deployments that front the pipeline directly, and for development. The
// login request is derived from query parameters; completion redirects to
// the caller-supplied return URL with the identity in response headers.
package local

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	"github.com/sealgate/sealgate/pkg/templates"
	"github.com/sealgate/sealgate/pkg/util/sets"
)

// Request parameters consumed by the local engine
const (
	ParamReturn  = "return"
	ParamService = "service"
	ParamForce   = "forceAuthn"
	ParamPassive = "isPassive"
	ParamMethod  = "authnMethod"
)

// Identity response headers set on completion
const (
	HeaderPrincipal = "X-Sealgate-Principal"
	HeaderMethod    = "X-Sealgate-Method"
	HeaderInstant   = "X-Sealgate-Instant"
)

// loginMarkerCookie marks an engine-side login exchange in flight; cleared
// on denial so a re-entry starts clean
const loginMarkerCookie = "sg_login"

// Options configures the local engine
type Options struct {
	// DefaultRelyingParty is used when the request carries no service
	// parameter
	DefaultRelyingParty string `yaml:"default_relying_party,omitempty"`
	// AllowedReturnHosts limits absolute return URLs to the named hosts;
	// relative return URLs are always accepted
	AllowedReturnHosts []string `yaml:"allowed_return_hosts,omitempty"`
}

// Engine is the stock local authentication engine
type Engine struct {
	defaultRelyingParty string
	allowedHosts        sets.Set[string]
	templates           *templates.Engine
}

// New returns a local Engine
func New(o *Options, te *templates.Engine) *Engine {
	e := &Engine{templates: te}
	if o != nil {
		e.defaultRelyingParty = o.DefaultRelyingParty
		if len(o.AllowedReturnHosts) > 0 {
			e.allowedHosts = sets.New(o.AllowedReturnHosts)
		}
	}
	return e
}

// returnURL validates and returns the caller-supplied return URL, or empty
// when it is missing or not permitted
func (e *Engine) returnURL(r *http.Request) string {
	raw := r.FormValue(ParamReturn)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.IsAbs() || u.Host != "" {
		if e.allowedHosts == nil || !e.allowedHosts.Contains(u.Host) {
			logger.Warn("return url host not permitted",
				logging.Pairs{"host": u.Host})
			return ""
		}
	}
	return raw
}

// LoginRequest derives the login request from the query parameters. A
// missing or unacceptable return URL yields no login request.
func (e *Engine) LoginRequest(r *http.Request) *authn.LoginRequest {
	if e.returnURL(r) == "" {
		return nil
	}
	lr := &authn.LoginRequest{
		RelyingParty:     r.FormValue(ParamService),
		RequestedMethods: r.Form[ParamMethod],
		ForceAuthn:       isTrue(r.FormValue(ParamForce)),
		PassiveAuthn:     isTrue(r.FormValue(ParamPassive)),
	}
	if lr.RelyingParty == "" {
		lr.RelyingParty = e.defaultRelyingParty
	}
	return lr
}

// CompleteLogin conveys the identity in response headers and redirects to
// the return URL
func (e *Engine) CompleteLogin(w http.ResponseWriter, r *http.Request,
	username, method string, instant time.Time) {
	h := w.Header()
	h.Set(HeaderPrincipal, username)
	h.Set(HeaderMethod, method)
	h.Set(HeaderInstant, strconv.FormatInt(instant.UnixMilli(), 10))
	http.Redirect(w, r, e.returnURL(r), http.StatusSeeOther)
}

// FailLogin presents the generic error page; internal error text is logged,
// never shown
func (e *Engine) FailLogin(w http.ResponseWriter, r *http.Request, err error) {
	logger.Warn("login failed", logging.Pairs{"detail": err.Error(),
		"client": r.RemoteAddr})
	d := &templates.Data{}
	if rerr := e.templates.Render(w, templates.PageError, d); rerr != nil {
		http.Error(w, "an error occurred during sign-in",
			http.StatusInternalServerError)
	}
}

// ClearLoginSession drops the engine-side login marker
func (e *Engine) ClearLoginSession(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     loginMarkerCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func isTrue(v string) bool {
	return v == "1" || v == "true"
}
