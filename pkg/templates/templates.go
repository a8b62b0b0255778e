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

// Package templates renders the interactive pages produced by the login
// pipeline (login form, expiration notice, denial and error pages).
// Templates are parsed once at startup; rendering is buffered so that a
// failed render never commits a partial response.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
)

// Page names that must be present in every template set
const (
	PageLogin  = "login.html"
	PageNotice = "notice.html"
	PageDenied = "denied.html"
	PageError  = "error.html"
)

//go:embed defaults/*.html
var defaultFS embed.FS

// Engine holds a parsed, immutable template set
type Engine struct {
	templates *template.Template
}

// New returns an Engine using the built-in default templates
func New() (*Engine, error) {
	t, err := template.ParseFS(defaultFS, "defaults/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: t}, nil
}

// NewFromDir returns an Engine with the default templates overridden by any
// same-named files in the provided directory
func NewFromDir(dir string) (*Engine, error) {
	if dir == "" {
		return New()
	}
	t, err := template.ParseFS(defaultFS, "defaults/*.html")
	if err != nil {
		return nil, err
	}
	t, err = t.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	e := &Engine{templates: t}
	for _, name := range []string{PageLogin, PageNotice, PageDenied, PageError} {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("template set is missing page %s", name)
		}
	}
	return e, nil
}

// Render executes the named page into the response, setting content type
// and cache suppression headers. The template is executed into a buffer
// first; on failure nothing is written and the error is returned.
func (e *Engine) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "-1")
	_, err := w.Write(buf.Bytes())
	return err
}
