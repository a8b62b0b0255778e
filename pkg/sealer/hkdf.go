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

package sealer

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// newHKDF returns the keystream reader used to derive the sealing key from
// master secret material. A nil salt is acceptable for HKDF; the info string
// binds the derivation to this usage.
func newHKDF(secret []byte) io.Reader {
	return hkdf.New(sha256.New, secret, nil, hkdfInfo)
}
