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

// Package notify implements the password-expiration notice submodule. When
// an authenticated principal's password expires within the configured
// window, and no notice was shown within the configured interval, the
// request is interrupted with a notice page. The session is sealed back to
// the client first so that the acknowledgment can recover it.
package notify

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/errors"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	"github.com/sealgate/sealgate/pkg/templates"
)

// Provider is the registered name of this submodule implementation
const Provider = "notify"

// adEpochOffset is the Active Directory filetime of the Unix epoch, in
// 100-nanosecond ticks since 1601-01-01
const adEpochOffset = 0x19db1ded53e8000

// Defaults applied when the options leave them unset
const (
	DefaultCookieName = "sg_notice"
	DefaultWindow     = 14 * 24 * time.Hour
	DefaultInterval   = 24 * time.Hour
	DefaultDateFormat = time.RFC1123
)

type notifySubmodule struct {
	name       string
	attribute  string
	adFormat   bool
	window     time.Duration
	interval   time.Duration
	cookieName string
	dateFormat string
	templates  *templates.Engine
	now        func() time.Time
}

// New returns a password-expiration notice submodule. The expiry attribute
// name is required.
func New(o *options.Options, deps *submodule.Deps) (submodule.Submodule, error) {
	if o.ExpiryAttribute == "" || deps == nil || deps.Templates == nil {
		return nil, errors.ErrInvalidOptions
	}
	s := &notifySubmodule{
		name:       o.Name,
		attribute:  o.ExpiryAttribute,
		adFormat:   o.ActiveDirectoryFormat,
		window:     o.Window,
		interval:   o.Interval,
		cookieName: o.CookieName,
		dateFormat: o.DateFormat,
		templates:  deps.Templates,
		now:        time.Now,
	}
	if s.window <= 0 {
		s.window = DefaultWindow
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.cookieName == "" {
		s.cookieName = DefaultCookieName
	}
	if s.dateFormat == "" {
		s.dateFormat = DefaultDateFormat
	}
	return s, nil
}

// expiry converts the raw attribute value to the expiration instant. AD
// filetime values are 100ns ticks since 1601; everything else is epoch
// milliseconds.
func (s *notifySubmodule) expiry(raw string) (time.Time, bool) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	if s.adFormat {
		v = (v - adEpochOffset) / 10000
	}
	return time.UnixMilli(v), true
}

// lastNotice reads the tracking cookie; absent or malformed reads as the
// zero time
func (s *notifySubmodule) lastNotice(r *http.Request) time.Time {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func (s *notifySubmodule) Run(host submodule.Host, w http.ResponseWriter,
	r *http.Request, ai *authn.Info) (submodule.Signal, error) {
	if !ai.Authenticated() {
		return submodule.SignalContinue, nil
	}
	if r.PostFormValue(authn.FieldNotifyAck) != "" {
		return submodule.SignalContinue, nil
	}
	raw, ok := ai.Attributes()[s.attribute]
	if !ok {
		return submodule.SignalContinue, nil
	}
	expires, ok := s.expiry(raw)
	if !ok {
		logger.Warn("unparseable password expiration attribute",
			logging.Pairs{"submodule": s.name, "username": ai.Username,
				"attribute": s.attribute, "value": raw})
		return submodule.SignalContinue, nil
	}
	now := s.now()
	if expires.Before(now) {
		// the directory is authoritative for lockout; an already-expired
		// password is only worth a log line here
		logger.Warn("password already expired",
			logging.Pairs{"submodule": s.name, "username": ai.Username,
				"expired": expires.Format(s.dateFormat)})
		return submodule.SignalContinue, nil
	}
	if expires.After(now.Add(s.window)) {
		s.clearTrackingCookie(host, w)
		return submodule.SignalContinue, nil
	}
	if now.Sub(s.lastNotice(r)) < s.interval {
		return submodule.SignalContinue, nil
	}
	// seal the session before interrupting the flow so the continue
	// request can recover the authenticated identity
	if err := host.SaveSession(w, ai); err != nil {
		logger.Error("session save failed, skipping expiration notice",
			logging.Pairs{"submodule": s.name, "username": ai.Username,
				"detail": err.Error()})
		return submodule.SignalContinue, nil
	}
	s.stampTrackingCookie(host, w, now)
	// the notice posts back to the full request uri so the engine's
	// parameters survive the acknowledgment
	d := templates.FromInfo(ai, r.URL.RequestURI())
	d.PasswordExpiration = expires.Format(s.dateFormat)
	d.Attributes = ai.Attributes()
	if err := s.templates.Render(w, templates.PageNotice, d); err != nil {
		return submodule.SignalContinue, err
	}
	logger.Info("password expiration notice shown",
		logging.Pairs{"submodule": s.name, "username": ai.Username,
			"expires": d.PasswordExpiration})
	return submodule.SignalResponse, nil
}

func (s *notifySubmodule) stampTrackingCookie(host submodule.Host,
	w http.ResponseWriter, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    strconv.FormatInt(now.UnixMilli(), 10),
		Path:     host.CookiePath(),
		MaxAge:   int(s.window / time.Second),
		Secure:   true,
		HttpOnly: true,
	})
}

func (s *notifySubmodule) clearTrackingCookie(host submodule.Host,
	w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     host.CookiePath(),
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
	})
}
