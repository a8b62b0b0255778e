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

package runtime

import "testing"

func TestVersion(t *testing.T) {
	ApplicationName = "sealgate"
	ApplicationVersion = "1.0.0"
	GitCommitID = "abc1234"
	BuildTime = "2026-03-17T12:00:00Z"
	const expected = "sealgate version 1.0.0 (commit abc1234, " +
		"built 2026-03-17T12:00:00Z, go1.23)"
	if v := Version("go1.23"); v != expected {
		t.Errorf("unexpected version line %q", v)
	}
}
