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

package authn

import "errors"

// ErrPassiveNotSatisfiable indicates a passive authentication request could
// not be satisfied by a prior session
var ErrPassiveNotSatisfiable = errors.New("passive authentication cannot be satisfied")

// ErrSubmoduleConfig is the generic error handed to the engine when the
// chain completes without producing a response or an authenticated result
var ErrSubmoduleConfig = errors.New("submodule configuration is invalid")

// ErrMalformedRecord indicates a pickled session record could not be encoded
// or decoded
var ErrMalformedRecord = errors.New("malformed session record")

// LoginError wraps an error raised by the credential subsystem that did not
// match any known failure category. It ranks below a fatal error when the
// pipeline selects the most specific failure to hand to the engine.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string {
	return "login error: " + e.Err.Error()
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// NewLoginError returns err wrapped as a LoginError
func NewLoginError(err error) error {
	return &LoginError{Err: err}
}
