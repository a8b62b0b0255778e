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

package errors

import "errors"

// ErrInvalidOptions is an error for when a configuration is invalid
var ErrInvalidOptions = errors.New("invalid options")

// ErrInvalidName is an error for when a configured name is reserved or empty
var ErrInvalidName = errors.New("invalid name")

// ErrUnknownSubmodule is an error for when the ordered submodule list names
// a submodule that has no configuration block
var ErrUnknownSubmodule = errors.New("unknown submodule name")

// ErrInvalidProvider is an error for when a submodule references an
// unregistered provider
var ErrInvalidProvider = errors.New("invalid provider")

// ErrInvalidKeyFile is an error for when the sealer key file is missing or
// unreadable
var ErrInvalidKeyFile = errors.New("invalid key file")

// ErrInvalidUsersFile is an error for when a users file is missing or
// unreadable
var ErrInvalidUsersFile = errors.New("invalid users file")
