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

// Package pipeline implements the stateless login controller. It recovers
// prior sessions from the sealed single sign-on cookie, runs the configured
// submodule chain over a shared authentication result, and hands the
// outcome to the authentication engine. All session state lives client-side
// in the sealed cookie; the pipeline itself holds none.
package pipeline

import (
	goerrors "errors"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/engine"
	"github.com/sealgate/sealgate/pkg/errors"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	"github.com/sealgate/sealgate/pkg/observability/metrics"
	"github.com/sealgate/sealgate/pkg/sealer"
	"github.com/sealgate/sealgate/pkg/templates"
)

// InvalidSentinel is the cookie value that marks a deliberately invalidated
// session. It is skipped on recovery without an unwrap attempt.
const InvalidSentinel = "INVALID"

// DefaultCookieName is the session cookie name when none is configured
const DefaultCookieName = "sg_sso"

// DefaultLifetime is the sealed session lifetime when none is configured
const DefaultLifetime = 8 * time.Hour

// Entry pairs a configured submodule name with its constructed instance
type Entry struct {
	Name      string
	Submodule submodule.Submodule
}

// Config carries the pipeline's collaborators and settings
type Config struct {
	Sealer     sealer.Sealer
	Engine     engine.Engine
	Templates  *templates.Engine
	Chain      []Entry
	CookieName string
	// CookiePath scopes the session and tracking cookies; it is also the
	// login endpoint path
	CookiePath string
	Lifetime   time.Duration
	// Exclusions lists client networks exempt from the address match on
	// recovery, for deployments behind NAT pools
	Exclusions []netip.Prefix
}

// Pipeline is the login front controller. It is immutable after
// construction and safe for concurrent use.
type Pipeline struct {
	sealer     sealer.Sealer
	engine     engine.Engine
	templates  *templates.Engine
	chain      []Entry
	cookieName string
	cookiePath string
	lifetime   time.Duration
	exclusions []netip.Prefix
	now        func() time.Time
}

// New returns a Pipeline from the provided Config
func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil || cfg.Sealer == nil || cfg.Engine == nil ||
		cfg.Templates == nil || len(cfg.Chain) == 0 {
		return nil, errors.ErrInvalidOptions
	}
	p := &Pipeline{
		sealer:     cfg.Sealer,
		engine:     cfg.Engine,
		templates:  cfg.Templates,
		chain:      cfg.Chain,
		cookieName: cfg.CookieName,
		cookiePath: cfg.CookiePath,
		lifetime:   cfg.Lifetime,
		exclusions: cfg.Exclusions,
		now:        time.Now,
	}
	if p.cookieName == "" {
		p.cookieName = DefaultCookieName
	}
	if p.cookiePath == "" {
		p.cookiePath = "/"
	}
	if p.lifetime <= 0 {
		p.lifetime = DefaultLifetime
	}
	return p, nil
}

// requestHost binds the Host surface to a single request so submodules can
// seal and invalidate without holding the request themselves
type requestHost struct {
	p *Pipeline
	r *http.Request
}

func (h *requestHost) SaveSession(w http.ResponseWriter,
	ai *authn.Info) error {
	return h.p.saveToCookie(w, h.r, ai)
}

func (h *requestHost) InvalidateSession(w http.ResponseWriter) {
	h.p.invalidate(w)
}

func (h *requestHost) CookiePath() string {
	return h.p.cookiePath
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := p.now()
	defer func() {
		metrics.PipelineRequestDuration.Observe(
			time.Since(start).Seconds())
	}()
	cw := &responseWriter{ResponseWriter: w}

	lr := p.engine.LoginRequest(r)
	if lr == nil {
		logger.Error("request reached the login endpoint without a login request",
			logging.Pairs{"path": r.URL.Path})
		p.renderError(cw)
		metrics.AuthnAttempts.WithLabelValues("no_request").Inc()
		return
	}

	recovered := p.recover(cw, r)
	continuing := r.PostFormValue(authn.FieldContinue) != ""

	if !continuing && recovered != nil {
		switch {
		case lr.ForceAuthn:
			logger.Info("forced reauthentication, dropping recovered session",
				logging.Pairs{"username": recovered.Username})
			p.invalidate(cw)
			metrics.AuthnShortcuts.WithLabelValues("force_authn").Inc()
			recovered = nil
		case !lr.AllowsMethod(recovered.Method):
			logger.Info("recovered method not acceptable, dropping session",
				logging.Pairs{"username": recovered.Username,
					"method": recovered.Method})
			p.invalidate(cw)
			metrics.AuthnShortcuts.WithLabelValues("method_mismatch").Inc()
			recovered = nil
		default:
			metrics.AuthnShortcuts.WithLabelValues("accepted").Inc()
		}
	}

	if !continuing && recovered == nil && lr.PassiveAuthn {
		p.engine.FailLogin(cw, r, authn.ErrPassiveNotSatisfiable)
		metrics.AuthnAttempts.WithLabelValues("passive_unsatisfied").Inc()
		return
	}

	// an acknowledged interruption finalizes with the recovered identity;
	// the cookie is not rewritten
	if continuing && recovered != nil {
		p.engine.CompleteLogin(cw, r, recovered.Username, recovered.Method,
			recovered.Instant)
		metrics.AuthnAttempts.WithLabelValues("continued").Inc()
		return
	}

	ai := &authn.Info{Request: lr}
	if recovered != nil {
		ai.Username = recovered.Username
		ai.Method = recovered.Method
		ai.Instant = recovered.Instant
	}

	host := &requestHost{p: p, r: r}
	responded := false
	for _, e := range p.chain {
		sig, err := e.Submodule.Run(host, cw, r, ai)
		if err != nil {
			if ai.FatalErr == nil {
				ai.FatalErr = err
			}
			logger.Error("submodule failed",
				logging.Pairs{"submodule": e.Name, "detail": err.Error()})
			metrics.SubmoduleRuns.WithLabelValues(e.Name, "error").Inc()
			continue
		}
		if sig == submodule.SignalResponse || cw.committed {
			metrics.SubmoduleRuns.WithLabelValues(e.Name, "response").Inc()
			responded = true
			break
		}
		metrics.SubmoduleRuns.WithLabelValues(e.Name, "continue").Inc()
	}
	if responded {
		metrics.AuthnAttempts.WithLabelValues("responded").Inc()
		return
	}

	if ai.Authenticated() && ai.FatalErr == nil {
		// a session accepted from the cookie is handed off as-is; a fresh
		// authentication is sealed back to the client first
		if recovered == nil {
			if err := p.saveToCookie(cw, r, ai); err != nil {
				logger.Error("session seal failed, continuing without sso",
					logging.Pairs{"username": ai.Username,
						"detail": err.Error()})
			}
		}
		p.engine.CompleteLogin(cw, r, ai.Username, ai.Method, ai.Instant)
		metrics.AuthnAttempts.WithLabelValues("success").Inc()
		return
	}

	err := ai.FatalErr
	if err == nil {
		err = ai.LoginErr
	}
	if err == nil {
		err = authn.ErrSubmoduleConfig
	}
	p.engine.FailLogin(cw, r, err)
	metrics.AuthnAttempts.WithLabelValues("failure").Inc()
}

// recover reconstructs the authentication result from the session cookie.
// Any unusable cookie is invalidated; the reasons differ only in logging
// and metrics.
func (p *Pipeline) recover(w http.ResponseWriter, r *http.Request) *authn.Info {
	c, err := r.Cookie(p.cookieName)
	if err != nil || c.Value == "" || c.Value == InvalidSentinel {
		return nil
	}
	data, err := p.sealer.Unwrap(c.Value)
	if err != nil {
		if goerrors.Is(err, sealer.ErrDataExpired) {
			logger.Info("session expired", logging.Pairs{
				"client": clientAddr(r)})
			metrics.SealOperations.WithLabelValues("unwrap",
				"expired").Inc()
		} else {
			logger.Error("session cookie failed integrity check",
				logging.Pairs{"client": clientAddr(r),
					"detail": err.Error()})
			metrics.SealOperations.WithLabelValues("unwrap",
				"integrity").Inc()
		}
		p.invalidate(w)
		return nil
	}
	ai, err := authn.Unpickle(data)
	if err != nil {
		logger.Error("session record is malformed",
			logging.Pairs{"client": clientAddr(r)})
		metrics.SealOperations.WithLabelValues("unwrap", "malformed").Inc()
		p.invalidate(w)
		return nil
	}
	observed := clientAddr(r)
	if ai.Address != observed && !p.excluded(observed) {
		logger.Warn("session presented from a different address",
			logging.Pairs{"username": ai.Username,
				"issued": ai.Address, "observed": observed})
		metrics.SealOperations.WithLabelValues("unwrap",
			"address_mismatch").Inc()
		p.invalidate(w)
		return nil
	}
	if !ai.Authenticated() {
		p.invalidate(w)
		return nil
	}
	metrics.SealOperations.WithLabelValues("unwrap", "success").Inc()
	return ai
}

// saveToCookie seals the identity fields into the session cookie, bound to
// the observed client address and the configured lifetime
func (p *Pipeline) saveToCookie(w http.ResponseWriter, r *http.Request,
	ai *authn.Info) error {
	ai.Address = clientAddr(r)
	pickled, err := ai.Pickle()
	if err != nil {
		metrics.SealOperations.WithLabelValues("wrap", "failure").Inc()
		return err
	}
	token, err := p.sealer.Wrap(pickled, ai.Instant.Add(p.lifetime))
	if err != nil {
		metrics.SealOperations.WithLabelValues("wrap", "failure").Inc()
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     p.cookieName,
		Value:    token,
		Path:     p.cookiePath,
		Secure:   true,
		HttpOnly: true,
	})
	metrics.SealOperations.WithLabelValues("wrap", "success").Inc()
	return nil
}

// invalidate overwrites the session cookie with the invalid sentinel
func (p *Pipeline) invalidate(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cookieName,
		Value:    InvalidSentinel,
		Path:     p.cookiePath,
		Secure:   true,
		HttpOnly: true,
	})
}

// excluded reports whether the observed client address falls in a network
// exempt from the address match
func (p *Pipeline) excluded(addr string) bool {
	if len(p.exclusions) == 0 {
		return false
	}
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	for _, prefix := range p.exclusions {
		if prefix.Contains(a) {
			return true
		}
	}
	return false
}

func (p *Pipeline) renderError(w http.ResponseWriter) {
	if err := p.templates.Render(w, templates.PageError,
		&templates.Data{}); err != nil {
		http.Error(w, "an error occurred during sign-in",
			http.StatusInternalServerError)
	}
}

// clientAddr returns the host portion of the request's remote address
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
