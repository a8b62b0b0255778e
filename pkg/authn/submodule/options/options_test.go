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

package options

import (
	goerrors "errors"
	"testing"

	"github.com/sealgate/sealgate/pkg/config/types"
	"github.com/sealgate/sealgate/pkg/errors"
)

func TestClone(t *testing.T) {
	o := New()
	o.Provider = "static"
	o.Users = map[string]types.EnvString{"jdoe": "secret"}
	o.Attributes = []string{"mail"}
	c := o.Clone()
	c.Users["other"] = "x"
	c.Attributes[0] = "changed"
	if _, ok := o.Users["other"]; ok {
		t.Error("expected the cloned users map to be independent")
	}
	if o.Attributes[0] != "mail" {
		t.Error("expected the cloned attributes slice to be independent")
	}
	if c.Provider != "static" {
		t.Error("expected scalar fields to carry over")
	}
}

func TestLookupValidate(t *testing.T) {
	registered := func(p string) bool { return p == "static" }
	l := Lookup{"cred": {Provider: "static"}}
	if err := l.Validate(registered); err != nil {
		t.Fatal(err)
	}
	if l["cred"].Name != "cred" {
		t.Error("expected validation to populate the block name")
	}

	l = Lookup{"cred": {Provider: "bogus"}}
	if err := l.Validate(registered); !goerrors.Is(err,
		errors.ErrInvalidProvider) {
		t.Errorf("expected invalid provider error, got %v", err)
	}

	l = Lookup{"cred": {}}
	if err := l.Validate(registered); !goerrors.Is(err,
		errors.ErrInvalidProvider) {
		t.Errorf("expected invalid provider error, got %v", err)
	}
}
