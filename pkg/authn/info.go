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

// Package authn provides the mutable per-request authentication result that
// is threaded through the login submodule chain, along with the immutable
// login request descriptor supplied by the authentication engine.
package authn

import (
	"strconv"
	"strings"
	"time"
)

// SAML authentication context class URNs for the supported methods
const (
	// MethodPassword identifies password authentication over a protected
	// transport
	MethodPassword = "urn:oasis:names:tc:SAML:2.0:ac:classes:PasswordProtectedTransport"
	// MethodTimeSyncToken identifies time-synchronized hardware token
	// authentication
	MethodTimeSyncToken = "urn:oasis:names:tc:SAML:2.0:ac:classes:TimeSyncToken"
)

// pickleDelimiter separates the fields of a pickled session record
const pickleDelimiter = "!"

// Info is the authentication result for a single request. It is owned
// exclusively by the pipeline for the duration of the request and passed by
// reference to each submodule; no submodule may retain it past its own call.
type Info struct {
	// Address is the client network address the session was issued to.
	// It is set only when the record is sealed back to the client.
	Address string

	// Username is the authenticated principal identity
	Username string

	// Method is the identifier of the credential scheme that succeeded
	Method string

	// Instant is when authentication completed; the zero value means
	// authentication has not been done
	Instant time.Time

	// Request is the engine-supplied login request descriptor, read-only
	// from the chain's perspective
	Request *LoginRequest

	// FatalErr is the first unrecoverable error raised by a submodule
	FatalErr error

	// LoginErr is an unclassified credential-subsystem error raised by a
	// submodule; less specific than FatalErr, more specific than none
	LoginErr error

	// Failure indicators. Any true flag marks the attempt as failed but
	// re-promptable; at most cumulative across submodules.
	UnknownUsername bool
	InvalidPassword bool
	ExpiredPassword bool
	AccountDisabled bool
	AccountLocked   bool

	resolvedAttributes map[string]string
}

// Authenticated returns true iff authentication has been done
func (i *Info) Authenticated() bool {
	return i.Username != "" && i.Method != "" && !i.Instant.IsZero()
}

// Failed returns true if any submodule recorded a credential failure
func (i *Info) Failed() bool {
	return i.UnknownUsername || i.InvalidPassword || i.ExpiredPassword ||
		i.AccountDisabled || i.AccountLocked
}

// Attributes returns the map of resolved attributes, creating it on first
// access
func (i *Info) Attributes() map[string]string {
	if i.resolvedAttributes == nil {
		i.resolvedAttributes = make(map[string]string, 5)
	}
	return i.resolvedAttributes
}

// Pickle returns the encoded form of the identity fields:
// address!username!method!instantMillis. The first three fields must not
// contain the delimiter.
func (i *Info) Pickle() (string, error) {
	if strings.Contains(i.Address, pickleDelimiter) ||
		strings.Contains(i.Username, pickleDelimiter) ||
		strings.Contains(i.Method, pickleDelimiter) {
		return "", ErrMalformedRecord
	}
	return i.Address + pickleDelimiter + i.Username + pickleDelimiter +
		i.Method + pickleDelimiter +
		strconv.FormatInt(i.Instant.UnixMilli(), 10), nil
}

// Unpickle decodes a pickled session record into a fresh Info
func Unpickle(pickled string) (*Info, error) {
	values := strings.SplitN(pickled, pickleDelimiter, 4)
	if len(values) != 4 {
		return nil, ErrMalformedRecord
	}
	millis, err := strconv.ParseInt(values[3], 10, 64)
	if err != nil {
		return nil, ErrMalformedRecord
	}
	i := &Info{
		Address:  values[0],
		Username: values[1],
		Method:   values[2],
	}
	if millis != 0 {
		i.Instant = time.UnixMilli(millis)
	}
	return i, nil
}
