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

package registry

import (
	goerrors "errors"
	"testing"

	"github.com/sealgate/sealgate/pkg/authn/submodule/options"
	"github.com/sealgate/sealgate/pkg/errors"
)

func TestIsRegistered(t *testing.T) {
	for _, provider := range []string{"static", "directory", "resolver",
		"authz", "notify", "form"} {
		if !IsRegistered(provider) {
			t.Errorf("expected provider %s to be registered", provider)
		}
	}
	if IsRegistered("imaginary") {
		t.Error("unexpected provider registration")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(&options.Options{Provider: "imaginary"}, nil)
	if !goerrors.Is(err, errors.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestNewStatic(t *testing.T) {
	s, err := New(&options.Options{Provider: "static"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		t.Fatal("expected a constructed submodule")
	}
}

func TestNewNilOptions(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("expected an error for nil options")
	}
}
