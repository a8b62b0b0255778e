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

// Package sets provides a generic Set type
package sets

import "maps"

// Set is a collection of unique values
type Set[T comparable] map[T]struct{}

// New returns a new Set[T] populated with the provided values
func New[T comparable](vals []T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// NewStringSet returns a new Set[string]
func NewStringSet() Set[string] {
	return make(Set[string])
}

// Add inserts a value into the set.
func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

// Remove deletes a value from the set.
func (s Set[T]) Remove(val T) {
	delete(s, val)
}

// Contains checks if a value is in the set.
func (s Set[T]) Contains(val T) bool {
	_, ok := s[val]
	return ok
}

// Keys returns the set elements as a slice in an unpredictable order.
func (s Set[T]) Keys() []T {
	out := make([]T, len(s))
	var i int
	for key := range s {
		out[i] = key
		i++
	}
	return out
}

// Clone returns a new independent copy of the set.
func (s Set[T]) Clone() Set[T] {
	return maps.Clone(s)
}
