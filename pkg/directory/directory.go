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

// Package directory defines the boundary with the external credential
// validation subsystem (an enterprise directory, PAM stack, or similar).
// The pipeline treats it as a synchronous external call with its own
// timeout and retry policy; error text returned from a failed validation
// is classified downstream against administrator-configured message lists.
package directory

import (
	"context"

	"github.com/pkg/errors"
)

// Validator validates a username and password against a backing credential
// store. On success it may return the authentication method that was
// satisfied (empty selects the submodule's configured default). On failure
// the error text is the classification input; implementations should
// surface the provider's message verbatim.
type Validator interface {
	Validate(ctx context.Context, username, password string) (string, error)
}

// StaticValidator is a map-backed Validator for tests and deployments
// without a directory. The failure messages are configurable so that
// classification against them can be exercised end to end.
type StaticValidator struct {
	// Users maps usernames to plaintext passwords
	Users map[string]string
	// Method is returned on successful validation
	Method string
	// UnknownUserMessage is the error text for an unrecognized username
	UnknownUserMessage string
	// BadPasswordMessage is the error text for a wrong password
	BadPasswordMessage string
}

// Validate implements Validator
func (v *StaticValidator) Validate(_ context.Context, username,
	password string) (string, error) {
	p, ok := v.Users[username]
	if !ok {
		return "", errors.New(v.UnknownUserMessage)
	}
	if p != password {
		return "", errors.New(v.BadPasswordMessage)
	}
	return v.Method, nil
}
