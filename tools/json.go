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

package tools

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Payload is the JSON form of a tool.
//
// When decoding, missing fields get defaults: a new id, visible set to
// true, the current time as meta data and the default Fibonacci levels.
// An empty "levels" list is kept as an empty list.
type Payload struct {
	ID      string     `json:"id"`
	Type    string     `json:"type"`
	Points  []Point    `json:"points"`
	Style   Style      `json:"style,omitempty"`
	Text    string     `json:"text,omitempty"`
	Visible *bool      `json:"visible,omitempty"`
	Locked  bool       `json:"locked,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
	Levels  []FibLevel `json:"levels,omitempty"`
}

// MarshalJSON writes the "levels" key whenever Levels is non-nil, so
// that an empty level list survives a round trip.
func (p Payload) MarshalJSON() ([]byte, error) {
	type plain Payload
	out := struct {
		plain
		Levels *[]FibLevel `json:"levels,omitempty"`
	}{plain: plain(p)}
	if p.Levels != nil {
		out.Levels = &p.Levels
	}
	return json.Marshal(out)
}

// Payload implements the [Tool] interface.
func (b *Base) Payload() Payload {
	visible := b.Visible
	meta := b.Meta
	points := slices.Clone(b.Points)
	if points == nil {
		points = []Point{}
	}
	return Payload{
		ID:      b.ID,
		Type:    string(b.kind),
		Points:  points,
		Style:   b.Style.Clone(),
		Text:    b.Text,
		Visible: &visible,
		Locked:  b.Locked,
		Meta:    &meta,
	}
}

// Decode creates a tool from its JSON form.
func Decode(p Payload) (Tool, error) {
	k, err := ParseKind(p.Type)
	if err != nil {
		return nil, err
	}

	b := Base{
		ID:      p.ID,
		Points:  slices.Clone(p.Points),
		Style:   p.Style.Clone(),
		Text:    p.Text,
		Visible: true,
		Locked:  p.Locked,
		kind:    k,
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if p.Visible != nil {
		b.Visible = *p.Visible
	}
	if p.Meta != nil {
		b.Meta = *p.Meta
	} else {
		b.Meta = newMeta()
	}

	t := constructors[k](b)
	if fib, ok := t.(*Fibonacci); ok && p.Levels != nil {
		fib.Levels = slices.Clone(p.Levels)
	}
	return t, nil
}

// FromJSON decodes a single tool.
func FromJSON(data []byte) (Tool, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode drawing: %w", err)
	}
	return Decode(p)
}

// ToJSON encodes a single tool.
func ToJSON(t Tool) ([]byte, error) {
	return json.Marshal(t.Payload())
}
