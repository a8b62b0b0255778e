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

package types

import (
	"testing"

	"gopkg.in/yaml.v2"
)

func TestEnvStringExpansion(t *testing.T) {
	t.Setenv("SEALGATE_TEST_VALUE", "expanded")
	var out struct {
		Value EnvString `yaml:"value"`
	}
	if err := yaml.Unmarshal([]byte("value: ${SEALGATE_TEST_VALUE}"),
		&out); err != nil {
		t.Fatal(err)
	}
	if out.Value != "expanded" {
		t.Errorf("expected expanded, got %q", out.Value)
	}
}

func TestEnvStringLiteral(t *testing.T) {
	var out struct {
		Value EnvString `yaml:"value"`
	}
	if err := yaml.Unmarshal([]byte("value: plain"), &out); err != nil {
		t.Fatal(err)
	}
	if out.Value != "plain" {
		t.Errorf("expected plain, got %q", out.Value)
	}
}

func TestEnvStringMapExpansion(t *testing.T) {
	t.Setenv("SEALGATE_TEST_SECRET", "hunter2")
	var out struct {
		Values EnvStringMap `yaml:"values"`
	}
	doc := "values:\n  user: ${SEALGATE_TEST_SECRET}\n  other: fixed\n"
	if err := yaml.Unmarshal([]byte(doc), &out); err != nil {
		t.Fatal(err)
	}
	if out.Values["user"] != "hunter2" || out.Values["other"] != "fixed" {
		t.Errorf("unexpected map %v", out.Values)
	}
}
