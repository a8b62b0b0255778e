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

package local

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/templates"
)

func newLocal(t *testing.T, o *Options) *Engine {
	t.Helper()
	te, err := templates.New()
	if err != nil {
		t.Fatal(err)
	}
	return New(o, te)
}

func TestLoginRequestFromParams(t *testing.T) {
	e := newLocal(t, nil)
	r := httptest.NewRequest("GET",
		"/login?return=/app&service=https://sp.example.org&forceAuthn=1"+
			"&authnMethod="+authn.MethodPassword, nil)
	lr := e.LoginRequest(r)
	if lr == nil {
		t.Fatal("expected a login request")
	}
	if lr.RelyingParty != "https://sp.example.org" || !lr.ForceAuthn ||
		lr.PassiveAuthn {
		t.Errorf("unexpected request %+v", lr)
	}
	if len(lr.RequestedMethods) != 1 ||
		lr.RequestedMethods[0] != authn.MethodPassword {
		t.Errorf("unexpected methods %v", lr.RequestedMethods)
	}
}

func TestLoginRequestDefaults(t *testing.T) {
	e := newLocal(t, &Options{DefaultRelyingParty: "https://default.example.org"})
	lr := e.LoginRequest(httptest.NewRequest("GET", "/login?return=/app", nil))
	if lr == nil {
		t.Fatal("expected a login request")
	}
	if lr.RelyingParty != "https://default.example.org" {
		t.Errorf("expected the default relying party, got %q",
			lr.RelyingParty)
	}
}

func TestLoginRequestMissingReturn(t *testing.T) {
	e := newLocal(t, nil)
	if lr := e.LoginRequest(httptest.NewRequest("GET", "/login", nil)); lr != nil {
		t.Error("a request without a return url must yield no login request")
	}
}

func TestLoginRequestRejectsForeignReturn(t *testing.T) {
	e := newLocal(t, &Options{AllowedReturnHosts: []string{"app.example.org"}})
	if lr := e.LoginRequest(httptest.NewRequest("GET",
		"/login?return=https://evil.example.net/phish", nil)); lr != nil {
		t.Error("an unlisted absolute return host must be rejected")
	}
	if lr := e.LoginRequest(httptest.NewRequest("GET",
		"/login?return=https://app.example.org/landing", nil)); lr == nil {
		t.Error("a listed return host must be accepted")
	}
}

func TestCompleteLogin(t *testing.T) {
	e := newLocal(t, nil)
	r := httptest.NewRequest("GET", "/login?return=/app", nil)
	w := httptest.NewRecorder()
	instant := time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)
	e.CompleteLogin(w, r, "jdoe", authn.MethodPassword, instant)
	if w.Code != 303 {
		t.Errorf("expected a see-other redirect, got %d", w.Code)
	}
	if w.Header().Get("Location") != "/app" {
		t.Errorf("unexpected redirect target %q",
			w.Header().Get("Location"))
	}
	if w.Header().Get(HeaderPrincipal) != "jdoe" ||
		w.Header().Get(HeaderMethod) != authn.MethodPassword {
		t.Error("expected the identity response headers")
	}
}

func TestFailLoginHidesDetail(t *testing.T) {
	e := newLocal(t, nil)
	w := httptest.NewRecorder()
	e.FailLogin(w, httptest.NewRequest("GET", "/login", nil),
		errors.New("ldap server 10.1.2.3 timed out"))
	body := w.Body.String()
	if strings.Contains(body, "10.1.2.3") {
		t.Error("internal error text must never reach the client")
	}
	if !strings.Contains(body, "Sign-In Error") {
		t.Error("expected the generic error page")
	}
}

func TestClearLoginSession(t *testing.T) {
	e := newLocal(t, nil)
	w := httptest.NewRecorder()
	e.ClearLoginSession(w, httptest.NewRequest("GET", "/login", nil))
	cs := w.Result().Cookies()
	if len(cs) != 1 || cs[0].Name != loginMarkerCookie || cs[0].MaxAge >= 0 {
		t.Error("expected the login marker cookie to be cleared")
	}
}
