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

// Package static implements a credential submodule backed by a fixed user
// manifest, intended for small deployments and testing
package static

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
)

// Provider is the registered name of this submodule implementation
const Provider = "static"

type staticSubmodule struct {
	users  map[string]string
	method string
	now    func() time.Time
}

// New returns a static credential submodule from the provided options. Users
// come from an htpasswd or csv file, an inline map, or both; inline
// plaintext values are bcrypt-hashed at load so the manifest never holds a
// recoverable credential.
func New(o *options.Options, _ *submodule.Deps) (submodule.Submodule, error) {
	s := &staticSubmodule{
		users:  make(map[string]string),
		method: o.Method,
		now:    time.Now,
	}
	if s.method == "" {
		s.method = authn.MethodPassword
	}
	if o.UsersFile != "" {
		m, err := loadUsersFile(o.UsersFile)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			s.users[k] = v
		}
	}
	for username, credential := range o.Users {
		c := string(credential)
		if !isHashed(c) {
			h, err := bcrypt.GenerateFromPassword([]byte(c),
				bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			c = string(h)
		}
		s.users[username] = c
	}
	return s, nil
}

func isHashed(credential string) bool {
	return strings.HasPrefix(credential, "$2a$") ||
		strings.HasPrefix(credential, "$2b$") ||
		strings.HasPrefix(credential, "$2y$")
}

func (s *staticSubmodule) verify(hash, password string) bool {
	if isHashed(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash),
			[]byte(password)) == nil
	}
	return hash == password
}

func (s *staticSubmodule) Run(_ submodule.Host, _ http.ResponseWriter,
	r *http.Request, ai *authn.Info) (submodule.Signal, error) {
	if ai.Authenticated() {
		return submodule.SignalContinue, nil
	}
	if ai.Request != nil && !ai.Request.AllowsMethod(s.method) {
		return submodule.SignalContinue, nil
	}
	username := r.PostFormValue(authn.FieldUsername)
	if username == "" {
		return submodule.SignalContinue, nil
	}
	hash, ok := s.users[username]
	if !ok {
		ai.UnknownUsername = true
		return submodule.SignalContinue, nil
	}
	if !s.verify(hash, r.PostFormValue(authn.FieldPassword)) {
		ai.InvalidPassword = true
		return submodule.SignalContinue, nil
	}
	ai.Username = username
	ai.Method = s.method
	ai.Instant = s.now()
	return submodule.SignalContinue, nil
}
