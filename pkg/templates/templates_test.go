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

package templates

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sealgate/sealgate/pkg/authn"
)

func TestRenderLogin(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	d := &Data{
		Username:        "jdoe",
		ServletPath:     "/login",
		InvalidPassword: true,
	}
	w := httptest.NewRecorder()
	if err := e.Render(w, PageLogin, d); err != nil {
		t.Fatal(err)
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="jdoe"`) {
		t.Error("expected username prefill in login page")
	}
	if !strings.Contains(body, "password you entered is incorrect") {
		t.Error("expected invalid password message in login page")
	}
	if !strings.Contains(body, `action="/login"`) {
		t.Error("expected form action in login page")
	}
	if w.Header().Get("Cache-Control") != "no-store, no-cache, must-revalidate" {
		t.Error("expected cache suppression headers")
	}
}

func TestRenderNoticeReplaysAttributes(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	d := &Data{
		Username:           "jdoe",
		ServletPath:        "/login",
		PasswordExpiration: "Mon, 02 Jan 2006 15:04:05 MST",
		Attributes:         map[string]string{"pwdLastSet": "133497600000000000"},
	}
	w := httptest.NewRecorder()
	if err := e.Render(w, PageNotice, d); err != nil {
		t.Fatal(err)
	}
	body := w.Body.String()
	for _, want := range []string{
		`name="` + authn.FieldContinue + `"`,
		`name="` + authn.FieldNotifyAck + `"`,
		`name="` + authn.FieldResolved + `" value="jdoe"`,
		`name="pwdLastSet" value="133497600000000000"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("notice page missing %s", want)
		}
	}
}

func TestRenderFailureCommitsNothing(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	if err := e.Render(w, "nonexistent.html", nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
	if w.Body.Len() != 0 {
		t.Error("failed render must not write a body")
	}
	if w.Header().Get("Content-Type") != "" {
		t.Error("failed render must not set headers")
	}
}

func TestNewFromDirOverride(t *testing.T) {
	dir := t.TempDir()
	const custom = `custom denied page`
	if err := os.WriteFile(filepath.Join(dir, PageDenied),
		[]byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	e, err := NewFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	if err := e.Render(w, PageDenied, &Data{}); err != nil {
		t.Fatal(err)
	}
	if w.Body.String() != custom {
		t.Errorf("expected overridden denied page, got %q", w.Body.String())
	}
	// pages not overridden still come from the defaults
	w = httptest.NewRecorder()
	if err := e.Render(w, PageLogin, &Data{ServletPath: "/login"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(w.Body.String(), "Sign In") {
		t.Error("expected default login page to survive partial override")
	}
}

func TestFromInfo(t *testing.T) {
	ai := &authn.Info{
		Username:        "jdoe",
		AccountLocked:   true,
		UnknownUsername: true,
		Request:         &authn.LoginRequest{RelyingParty: "https://sp.example.org"},
	}
	d := FromInfo(ai, "/login")
	if d.Username != "jdoe" || !d.AccountLocked || !d.UnknownUsername ||
		d.RelyingParty != "https://sp.example.org" || d.ServletPath != "/login" {
		t.Errorf("FromInfo mismatch: %+v", d)
	}
}
