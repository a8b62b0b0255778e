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

import "slices"

// LoginRequest is the engine-supplied descriptor of the relying party's
// authentication request. It is immutable for the duration of the request.
type LoginRequest struct {
	// RelyingParty is the identifier of the requesting service provider
	RelyingParty string
	// RequestedMethods is the ordered list of acceptable authentication
	// methods; empty means any method is acceptable
	RequestedMethods []string
	// ForceAuthn requires fresh authentication regardless of prior state
	ForceAuthn bool
	// PassiveAuthn forbids interactive prompting
	PassiveAuthn bool
}

// AllowsMethod returns true if the request permits the provided
// authentication method
func (r *LoginRequest) AllowsMethod(method string) bool {
	if len(r.RequestedMethods) == 0 {
		return true
	}
	return slices.Contains(r.RequestedMethods, method)
}

// AllowsAnyMethod returns true if the request permits at least one of the
// provided authentication methods
func (r *LoginRequest) AllowsAnyMethod(methods []string) bool {
	if len(r.RequestedMethods) == 0 {
		return true
	}
	return slices.ContainsFunc(methods, r.AllowsMethod)
}
