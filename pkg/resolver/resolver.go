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

// Package resolver defines the boundary with the external attribute
// resolution subsystem. The pipeline only ever uses the first value of
// each resolved attribute.
package resolver

import "context"

// Resolver resolves named attributes for an authenticated principal in the
// context of a relying party
type Resolver interface {
	Resolve(ctx context.Context, principal string, names []string,
		relyingParty string) (map[string][]string, error)
}

// StaticResolver is a map-backed Resolver for tests and simple deployments
type StaticResolver struct {
	// Attributes maps principal -> attribute name -> values
	Attributes map[string]map[string][]string
}

// Resolve implements Resolver; unknown principals resolve to no attributes
func (r *StaticResolver) Resolve(_ context.Context, principal string,
	names []string, _ string) (map[string][]string, error) {
	byName, ok := r.Attributes[principal]
	if !ok {
		return nil, nil
	}
	out := make(map[string][]string, len(names))
	for _, name := range names {
		if vals, ok := byName[name]; ok && len(vals) > 0 {
			out[name] = vals
		}
	}
	return out, nil
}
