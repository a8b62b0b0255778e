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

package form

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/templates"
)

func newForm(t *testing.T) submodule.Submodule {
	t.Helper()
	te, err := templates.New()
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(&options.Options{}, &submodule.Deps{Templates: te})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunRendersForm(t *testing.T) {
	s := newForm(t)
	v := url.Values{}
	v.Set(authn.FieldUsername, "jdoe")
	v.Set(authn.FieldPassword, "wrong")
	r := httptest.NewRequest("POST", "/login",
		strings.NewReader(v.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ai := &authn.Info{InvalidPassword: true}
	w := httptest.NewRecorder()
	sig, err := s.Run(nil, w, r, ai)
	if err != nil {
		t.Fatal(err)
	}
	if sig != submodule.SignalResponse {
		t.Fatal("the form must end the request")
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="jdoe"`) {
		t.Error("expected the submitted username prefilled")
	}
	if !strings.Contains(body, "password you entered is incorrect") {
		t.Error("expected the failure flag surfaced on the form")
	}
}

func TestRunSkipsAuthenticated(t *testing.T) {
	s := newForm(t)
	ai := &authn.Info{Username: "jdoe", Method: authn.MethodPassword,
		Instant: time.Now()}
	w := httptest.NewRecorder()
	sig, err := s.Run(nil, w, httptest.NewRequest("GET", "/login", nil), ai)
	if err != nil {
		t.Fatal(err)
	}
	if sig != submodule.SignalContinue || w.Body.Len() != 0 {
		t.Error("an authenticated request must pass through untouched")
	}
}

func TestRunActionKeepsQuery(t *testing.T) {
	s := newForm(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/login?return=%2Fdone&service=sp", nil)
	sig, err := s.Run(nil, w, r, &authn.Info{})
	if err != nil {
		t.Fatal(err)
	}
	if sig != submodule.SignalResponse {
		t.Fatal("the form must end the request")
	}
	if !strings.Contains(w.Body.String(),
		`action="/login?return=%2Fdone&amp;service=sp"`) {
		t.Error("the form must post back to the full request uri")
	}
}
