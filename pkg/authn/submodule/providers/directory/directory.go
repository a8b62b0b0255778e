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

// Package directory implements a credential submodule that validates
// submitted credentials against an external directory service and maps the
// service's failure text onto the standard failure flags
package directory

import (
	"net/http"
	"strings"
	"time"

	"github.com/sealgate/sealgate/pkg/authn"
	"github.com/sealgate/sealgate/pkg/authn/classify"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	dir "github.com/sealgate/sealgate/pkg/directory"
	"github.com/sealgate/sealgate/pkg/errors"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
)

// Provider is the registered name of this submodule implementation
const Provider = "directory"

type directorySubmodule struct {
	name      string
	validator dir.Validator
	matchers  *classify.Matchers
	suffix    string
	method    string
	now       func() time.Time
}

// New returns a directory-backed credential submodule. The Deps must carry
// a non-nil directory Validator.
func New(o *options.Options, deps *submodule.Deps) (submodule.Submodule, error) {
	if deps == nil || deps.Directory == nil {
		return nil, errors.ErrInvalidOptions
	}
	d := &directorySubmodule{
		name:      o.Name,
		validator: deps.Directory,
		matchers:  o.Classify,
		suffix:    strings.ToLower(o.StripDomainSuffix),
		method:    o.Method,
		now:       time.Now,
	}
	if d.matchers == nil {
		d.matchers = &classify.Matchers{}
	}
	if d.method == "" {
		d.method = authn.MethodPassword
	}
	return d, nil
}

// normalize lowercases the submitted identity and strips the configured
// domain suffix so directory lookups and the sealed record always use the
// canonical form
func (d *directorySubmodule) normalize(username string) string {
	username = strings.ToLower(strings.TrimSpace(username))
	if d.suffix != "" {
		username = strings.TrimSuffix(username, d.suffix)
	}
	return username
}

func (d *directorySubmodule) Run(_ submodule.Host, _ http.ResponseWriter,
	r *http.Request, ai *authn.Info) (submodule.Signal, error) {
	if ai.Authenticated() {
		return submodule.SignalContinue, nil
	}
	if ai.Request != nil && !ai.Request.AllowsMethod(d.method) {
		return submodule.SignalContinue, nil
	}
	username := d.normalize(r.PostFormValue(authn.FieldUsername))
	if username == "" {
		return submodule.SignalContinue, nil
	}
	password := r.PostFormValue(authn.FieldPassword)
	if password == "" {
		ai.InvalidPassword = true
		return submodule.SignalContinue, nil
	}
	method, err := d.validator.Validate(r.Context(), username, password)
	if err != nil {
		d.fail(ai, username, err)
		return submodule.SignalContinue, nil
	}
	if method == "" {
		method = d.method
	}
	ai.Username = username
	ai.Method = method
	ai.Instant = d.now()
	return submodule.SignalContinue, nil
}

// fail maps a validation error onto the authentication result. Known
// failure text sets a flag and is retained as the login-layer error;
// anything unrecognized is a system failure and must surface as fatal.
func (d *directorySubmodule) fail(ai *authn.Info, username string, err error) {
	if flag, ok := d.matchers.Classify(err.Error()); ok {
		flag.Apply(ai)
		ai.LoginErr = err
		logger.Debug("credential validation failed",
			logging.Pairs{"submodule": d.name, "username": username,
				"kind": flag.String()})
		return
	}
	if ai.FatalErr == nil {
		ai.FatalErr = authn.NewLoginError(err)
	}
	logger.Error("directory validation error",
		logging.Pairs{"submodule": d.name, "username": username,
			"detail": err.Error()})
}
