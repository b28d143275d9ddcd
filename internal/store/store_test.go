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

package store

import (
	"errors"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	s, err := Open(filepath.Join(t.TempDir(), "drawings.db"), log.WithField("component", "store"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Load("EURUSD"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store: %v", err)
	}

	if err := s.Save("EURUSD", []byte(`{"version":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("EURUSD", []byte(`{"version":1,"drawings":[]}`)); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load("EURUSD")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != `{"version":1,"drawings":[]}` {
		t.Errorf("Load = %s", doc)
	}

	if err := s.Save("", nil); err == nil {
		t.Error("empty chart id accepted")
	}
}

func TestChartsDelete(t *testing.T) {
	s := openTemp(t)

	for _, id := range []string{"a", "b"} {
		if err := s.Save(id, []byte("[]")); err != nil {
			t.Fatal(err)
		}
	}
	charts, err := s.Charts()
	if err != nil {
		t.Fatal(err)
	}
	if len(charts) != 2 {
		t.Fatalf("got %d charts, want 2", len(charts))
	}
	for _, e := range charts {
		if e.Size != 2 {
			t.Errorf("%s: size %d", e.ChartID, e.Size)
		}
	}

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("missing"); err != nil {
		t.Error(err)
	}
	if _, err := s.Load("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted chart still present: %v", err)
	}
	charts, _ = s.Charts()
	if len(charts) != 1 || charts[0].ChartID != "b" {
		t.Errorf("charts after delete: %v", charts)
	}
}
