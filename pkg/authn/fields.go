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

// Submitted form field names. These are the wire contract with the rendered
// pages; per-attribute-name fields additionally carry previously-displayed
// attribute values on a continue re-submission.
const (
	// FieldUsername carries the submitted principal name
	FieldUsername = "j_username"
	// FieldPassword carries the submitted password
	FieldPassword = "j_password"
	// FieldContinue distinguishes a re-submission from a first visit
	FieldContinue = "j_continue"
	// FieldNotifyAck marks a request acknowledging an expiration notice
	FieldNotifyAck = "j_notify"
	// FieldResolved names the identity whose attributes are replayed in
	// per-attribute form fields; trusted only when it matches the
	// authenticated identity
	FieldResolved = "j_resolved"
)
