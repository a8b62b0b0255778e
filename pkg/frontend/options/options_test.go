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

import "testing"

func TestNew(t *testing.T) {
	o := New()
	if o.ListenPort != DefaultListenPort {
		t.Errorf("expected port %d, got %d", DefaultListenPort, o.ListenPort)
	}
	if o.ReadHeaderTimeout == 0 || o.ShutdownTimeout == 0 {
		t.Error("expected default timeouts")
	}
}

func TestClone(t *testing.T) {
	o := New()
	o.ListenAddress = "127.0.0.1"
	c := o.Clone()
	c.ListenAddress = "0.0.0.0"
	if o.ListenAddress != "127.0.0.1" {
		t.Error("expected the clone to be independent")
	}
}

func TestServeTLS(t *testing.T) {
	o := New()
	if o.ServeTLS() {
		t.Error("expected tls off by default")
	}
	o.TLSCertPath = "/tmp/cert.pem"
	if o.ServeTLS() {
		t.Error("expected tls off with only a cert path")
	}
	o.TLSKeyPath = "/tmp/key.pem"
	if !o.ServeTLS() {
		t.Error("expected tls on with both paths set")
	}
}
