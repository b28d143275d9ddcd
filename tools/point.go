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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Point is an anchor point in chart coordinates.  X is a (fractional)
// bar index, or a timestamp if the host chart uses a time axis.  Y is a
// price.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Meta records when a drawing was created and last changed.  The
// timestamps have millisecond precision, matching the JSON form.
type Meta struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// now is the clock used for meta data.
var now = time.Now

// stamp returns the current time truncated to whole milliseconds,
// without a monotonic clock reading.
func stamp() time.Time {
	return time.UnixMilli(now().UnixMilli())
}

func newMeta() Meta {
	t := stamp()
	return Meta{CreatedAt: t, UpdatedAt: t}
}

type metaJSON struct {
	CreatedAt json.RawMessage `json:"createdAt,omitempty"`
	UpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
}

// MarshalJSON encodes the timestamps as Unix milliseconds.
func (m Meta) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, `{"createdAt":%d,"updatedAt":%d}`,
		m.CreatedAt.UnixMilli(), m.UpdatedAt.UnixMilli()), nil
}

// UnmarshalJSON accepts Unix milliseconds or RFC 3339 strings.  Missing
// timestamps are set to the current time.
func (m *Meta) UnmarshalJSON(data []byte) error {
	var raw metaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	created, err := parseTimestamp(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseTimestamp(raw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updatedAt: %w", err)
	}
	switch {
	case created.IsZero() && updated.IsZero():
		created = stamp()
		updated = created
	case created.IsZero():
		created = updated
	case updated.IsZero():
		updated = created
	}
	m.CreatedAt, m.UpdatedAt = created, updated
	return nil
}

func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), nil
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(ms)), nil
}
