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

// Package classify maps raw credential-subsystem error text onto the five
// known login failure categories by substring match against
// administrator-configured message lists. Matching is ordered and
// first-match-wins; unmatched errors are left for the caller to treat as
// system failures.
package classify

import (
	"strings"

	"github.com/sealgate/sealgate/pkg/authn"
)

// Flag identifies one login failure category
type Flag int

const (
	FlagNone Flag = iota
	FlagUnknownUsername
	FlagInvalidPassword
	FlagExpiredPassword
	FlagAccountDisabled
	FlagAccountLocked
)

func (f Flag) String() string {
	switch f {
	case FlagUnknownUsername:
		return "unknownUsername"
	case FlagInvalidPassword:
		return "invalidPassword"
	case FlagExpiredPassword:
		return "expiredPassword"
	case FlagAccountDisabled:
		return "accountDisabled"
	case FlagAccountLocked:
		return "accountLocked"
	}
	return "none"
}

// Apply sets the corresponding failure flag on the provided Info
func (f Flag) Apply(ai *authn.Info) {
	switch f {
	case FlagUnknownUsername:
		ai.UnknownUsername = true
	case FlagInvalidPassword:
		ai.InvalidPassword = true
	case FlagExpiredPassword:
		ai.ExpiredPassword = true
	case FlagAccountDisabled:
		ai.AccountDisabled = true
	case FlagAccountLocked:
		ai.AccountLocked = true
	}
}

// Matchers holds the administrator-configured message substrings for each
// failure category
type Matchers struct {
	UnknownUsername []string `yaml:"unknown_username,omitempty"`
	InvalidPassword []string `yaml:"invalid_password,omitempty"`
	ExpiredPassword []string `yaml:"expired_password,omitempty"`
	AccountDisabled []string `yaml:"account_disabled,omitempty"`
	AccountLocked   []string `yaml:"account_locked,omitempty"`
}

// Classify matches msg against the configured lists in declared priority
// order and returns the first matching category. The second return is false
// when no list matched.
func (m *Matchers) Classify(msg string) (Flag, bool) {
	ordered := []struct {
		flag     Flag
		patterns []string
	}{
		{FlagUnknownUsername, m.UnknownUsername},
		{FlagInvalidPassword, m.InvalidPassword},
		{FlagExpiredPassword, m.ExpiredPassword},
		{FlagAccountDisabled, m.AccountDisabled},
		{FlagAccountLocked, m.AccountLocked},
	}
	for _, c := range ordered {
		for _, p := range c.patterns {
			if p != "" && strings.Contains(msg, p) {
				return c.flag, true
			}
		}
	}
	return FlagNone, false
}

// Clone returns a deep copy of the Matchers
func (m *Matchers) Clone() *Matchers {
	out := &Matchers{}
	out.UnknownUsername = append([]string(nil), m.UnknownUsername...)
	out.InvalidPassword = append([]string(nil), m.InvalidPassword...)
	out.ExpiredPassword = append([]string(nil), m.ExpiredPassword...)
	out.AccountDisabled = append([]string(nil), m.AccountDisabled...)
	out.AccountLocked = append([]string(nil), m.AccountLocked...)
	return out
}
