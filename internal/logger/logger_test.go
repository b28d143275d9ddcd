// seehuhn.de/go/drawtools - drawing tools for interactive price charts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithComponent(t *testing.T) {
	l := logrus.New()
	entry := WithComponent(l, "registry")
	if v, ok := entry.Data["component"]; !ok || v != "registry" {
		t.Fatalf("component field missing: %v", entry.Data)
	}
}

func TestConfigureInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	l, err := New(Options{Level: "warn", Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %s, want debug", l.GetLevel())
	}
}

func TestJSONFields(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	l, err := New(Options{Level: "info", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	WithComponent(l, "cli").Info("hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["message"] != "hello" || rec["component"] != "cli" || rec["timestamp"] == nil {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestFileOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	name := filepath.Join(t.TempDir(), "drawtools.log")
	l, err := New(Options{Level: "info", Format: "text", Output: name})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("written")

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("written")) {
		t.Errorf("log file holds %q", data)
	}
}
