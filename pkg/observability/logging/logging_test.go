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

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sealgate/sealgate/pkg/observability/logging/level"
	"github.com/sealgate/sealgate/pkg/observability/logging/options"
)

func TestStreamLoggerLine(t *testing.T) {
	var buf bytes.Buffer
	l := StreamLogger(&buf, level.Info)
	l.Info("test event", Pairs{"zed": "last", "alpha": "first",
		"spaced": "two words"})
	line := buf.String()
	if !strings.Contains(line, "app=sealgate") {
		t.Error("expected the app field")
	}
	if !strings.Contains(line, "level=info") {
		t.Error("expected the level field")
	}
	if !strings.Contains(line, `event="test event"`) {
		t.Error("expected the quoted event")
	}
	if !strings.Contains(line, `spaced="two words"`) {
		t.Error("expected values with spaces quoted")
	}
	// detail keys are emitted in sorted order
	if strings.Index(line, "alpha=") > strings.Index(line, "zed=") {
		t.Error("expected sorted detail keys")
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("expected a newline-terminated log line")
	}
}

func TestLevelSuppression(t *testing.T) {
	var buf bytes.Buffer
	l := StreamLogger(&buf, level.Warn)
	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	if buf.Len() != 0 {
		t.Error("events below the logger level must be suppressed")
	}
	l.Warn("shown", nil)
	l.Error("shown", nil)
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("expected 2 emitted lines, got %d", n)
	}
}

func TestSetLogLevelUnknown(t *testing.T) {
	var buf bytes.Buffer
	l := StreamLogger(&buf, level.Info)
	l.SetLogLevel("nonsense")
	if l.Level() != level.Info {
		t.Errorf("unknown level must fall back to info, got %s", l.Level())
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Error("expected a warning about the unknown level")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	l := New(&options.Options{LogFile: path, LogLevel: "debug"}, 0)
	l.Debug("file event", Pairs{"k": "v"})
	l.Close()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "event=\"file event\"") {
		t.Errorf("unexpected log content %q", string(b))
	}
}

func TestNewInstanceID(t *testing.T) {
	dir := t.TempDir()
	l := New(&options.Options{LogFile: filepath.Join(dir, "out.log"),
		LogLevel: "info"}, 2)
	l.Info("instance event", nil)
	l.Close()
	if _, err := os.Stat(filepath.Join(dir, "out.2.log")); err != nil {
		t.Error("expected the instance id in the log file name")
	}
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	// must not panic with no writer
	l.Info("nowhere", Pairs{"k": "v"})
	l.Close()
}
