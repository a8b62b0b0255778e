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


// Package runtime holds the process-wide application identity, set once at
// startup and read-only thereafter.
package runtime

import "fmt"

// ApplicationName is the short name of the application
var ApplicationName string

// ApplicationVersion holds the release version of the application
var ApplicationVersion string

// GitCommitID and BuildTime are stamped at build time via -ldflags -X
var (
	GitCommitID string
	BuildTime   string
)

// Version returns the full display version line for the application
func Version(goVersion string) string {
	return fmt.Sprintf("%s version %s (commit %s, built %s, %s)",
		ApplicationName, ApplicationVersion, GitCommitID, BuildTime,
		goVersion)
}
