package recipe

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/schedule"
)

// DurationKind tells which form a Duration was written in.
type DurationKind uint8

const (
	// DurationUnset means no duration was given.
	DurationUnset DurationKind = iota
	// DurationMinutes is a plain number of minutes.
	DurationMinutes
	// DurationToken is a string such as "14d", "2h", "120m" or "45".
	DurationToken
)

// Duration is a step duration as written in a recipe: unset, a number of
// minutes, or a token string.
type Duration struct {
	kind    DurationKind
	minutes float64
	token   string
}

// Minutes returns a Duration of n minutes.
func Minutes(n float64) Duration {
	return Duration{kind: DurationMinutes, minutes: n}
}

// Token returns a Duration written as a token string.
func Token(s string) Duration {
	return Duration{kind: DurationToken, token: s}
}

// Kind returns the form the duration was written in.
func (d Duration) Kind() DurationKind { return d.kind }

// IsZero reports whether no duration was given.
func (d Duration) IsZero() bool { return d.kind == DurationUnset }

// Minutes resolves the duration to minutes. Unset and unparseable tokens
// resolve to zero.
func (d Duration) Minutes() float64 {
	switch d.kind {
	case DurationMinutes:
		return schedule.ParseDurationToMinutes(d.minutes)
	case DurationToken:
		return schedule.ParseDurationToken(d.token)
	}
	return 0
}

// Valid reports whether the duration resolves without degrading to zero.
// Unset durations are valid.
func (d Duration) Valid() bool {
	switch d.kind {
	case DurationMinutes:
		return !math.IsNaN(d.minutes) && !math.IsInf(d.minutes, 0)
	case DurationToken:
		return schedule.IsDurationToken(d.token)
	}
	return true
}

// String returns the duration as written.
func (d Duration) String() string {
	switch d.kind {
	case DurationMinutes:
		return strconv.FormatFloat(d.minutes, 'f', -1, 64)
	case DurationToken:
		return d.token
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case DurationMinutes:
		return json.Marshal(d.minutes)
	case DurationToken:
		return json.Marshal(d.token)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler. Numbers become minutes, strings
// become tokens and null leaves the duration unset.
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*d = Duration{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.InvalidFormat("duration", "string or number").WithCause(err)
		}
		*d = Token(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.InvalidFormat("duration", "string or number").WithCause(err)
	}
	*d = Minutes(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	switch d.kind {
	case DurationMinutes:
		return d.minutes, nil
	case DurationToken:
		return d.token, nil
	}
	return nil, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.InvalidFormat("duration", "string or number").
			WithDetail("line", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		*d = Duration{}
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return errors.InvalidFormat("duration", "string or number").WithCause(err)
		}
		*d = Minutes(n)
	default:
		*d = Token(node.Value)
	}
	return nil
}
