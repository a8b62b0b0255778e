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

import "github.com/sealgate/sealgate/pkg/authn"

// Data is the model handed to every page template
type Data struct {
	// Username is the submitted or authenticated principal name
	Username string
	// ServletPath is the login endpoint URI used as the form action. It
	// carries the request's query string so engine parameters survive a
	// form post.
	ServletPath string
	// RelyingParty is the identifier of the requesting service provider
	RelyingParty string
	// PasswordExpiration is the human-formatted expiration instant, set
	// only on the notice page
	PasswordExpiration string
	// Attributes carries resolved attributes for replay through hidden
	// form fields on the notice page
	Attributes map[string]string
	// Message is a generic display message for the error page
	Message string

	// Failure flags for display on the login form
	UnknownUsername bool
	InvalidPassword bool
	ExpiredPassword bool
	AccountDisabled bool
	AccountLocked   bool
}

// FromInfo returns a Data populated from the authentication result
func FromInfo(ai *authn.Info, servletPath string) *Data {
	d := &Data{
		Username:        ai.Username,
		ServletPath:     servletPath,
		UnknownUsername: ai.UnknownUsername,
		InvalidPassword: ai.InvalidPassword,
		ExpiredPassword: ai.ExpiredPassword,
		AccountDisabled: ai.AccountDisabled,
		AccountLocked:   ai.AccountLocked,
	}
	if ai.Request != nil {
		d.RelyingParty = ai.Request.RelyingParty
	}
	return d
}

// Field names replayed by the page forms; mirrored from the authn package
// so templates can reference them via the Data model
func (d *Data) FieldUsername() string  { return authn.FieldUsername }
func (d *Data) FieldPassword() string  { return authn.FieldPassword }
func (d *Data) FieldContinue() string  { return authn.FieldContinue }
func (d *Data) FieldNotifyAck() string { return authn.FieldNotifyAck }
func (d *Data) FieldResolved() string  { return authn.FieldResolved }
