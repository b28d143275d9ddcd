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

package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/drawtools/tools"
)

// DocumentVersion is the version written by MarshalJSON.
const DocumentVersion = 1

// Document is the JSON form of a registry.
type Document struct {
	Version  int             `json:"version"`
	Drawings []tools.Payload `json:"drawings"`
}

// Document returns the drawings in paint order.
func (r *Registry) Document() Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := Document{
		Version:  DocumentVersion,
		Drawings: make([]tools.Payload, len(r.tools)),
	}
	for i, t := range r.tools {
		doc.Drawings[i] = t.Payload()
	}
	return doc
}

// MarshalJSON implements the [json.Marshaler] interface.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

// UnmarshalJSON replaces the contents of the registry.  Both the
// document form and a bare array of drawings are accepted.  Drawings of
// unknown type and duplicate ids are skipped with a warning.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc Document
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &doc.Drawings); err != nil {
			return fmt.Errorf("decode drawings: %w", err)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode drawings: %w", err)
	}
	if doc.Version > DocumentVersion {
		return fmt.Errorf("drawings document version %d not supported", doc.Version)
	}
	_, err := r.Load(doc)
	return err
}

// Load replaces the contents of the registry by the drawings in doc.
// It returns the number of skipped drawings.
func (r *Registry) Load(doc Document) (skipped int, err error) {
	loaded := make([]tools.Tool, 0, len(doc.Drawings))
	seen := make(map[string]bool, len(doc.Drawings))
	for i, p := range doc.Drawings {
		t, err := tools.Decode(p)
		if errors.Is(err, tools.ErrUnknownKind) {
			r.log.WithFields(logrus.Fields{
				"index": i,
				"type":  p.Type,
			}).Warn("skipping drawing of unknown type")
			skipped++
			continue
		} else if err != nil {
			return 0, fmt.Errorf("drawing %d: %w", i, err)
		}
		id := t.Common().ID
		if seen[id] {
			r.log.WithField("drawing_id", id).Warn("skipping duplicate drawing")
			skipped++
			continue
		}
		seen[id] = true
		loaded = append(loaded, t)
	}

	r.mu.Lock()
	r.tools = loaded
	r.layer.ClearOwned()
	r.mu.Unlock()

	r.RequestRender()
	return skipped, nil
}
