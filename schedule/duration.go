package schedule

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Minutes per duration unit.
const (
	MinutesPerDay    = 24 * 60
	MinutesPerHour   = 60
	MinutesPerMinute = 1
)

var durationToken = regexp.MustCompile(`(?i)^(\d+)\s*([dhm])$`)

// Minuter is implemented by duration values that resolve themselves to minutes.
type Minuter interface {
	Minutes() float64
}

// ParseDurationToMinutes converts a duration value into minutes.
//
// nil yields 0, numbers are taken as minutes, strings go through
// ParseDurationToken, time.Duration converts exactly and Minuter values
// resolve through Minutes. Anything
// else, and any non-finite number, yields 0.
func ParseDurationToMinutes(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return ParseDurationToken(v)
	case json.Number:
		return ParseDurationToken(v.String())
	case time.Duration:
		return v.Minutes()
	case Minuter:
		return finite(v.Minutes())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	case reflect.Pointer:
		if rv.IsNil() {
			return 0
		}
		return ParseDurationToMinutes(rv.Elem().Interface())
	}
	return 0
}

// ParseDurationToken converts a duration string into minutes.
//
// "<digits><unit>" with unit d, h or m (any case, optional whitespace before
// the unit) is scaled by the unit. Any other string is parsed as a plain
// number of minutes (decimal, or an integer with a 0x, 0o or 0b prefix; digit
// separators are not accepted); if that fails, or is not finite, the result
// is 0.
func ParseDurationToken(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m := durationToken.FindStringSubmatch(s); m != nil {
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		switch strings.ToLower(m[2]) {
		case "d":
			return finite(val * MinutesPerDay)
		case "h":
			return finite(val * MinutesPerHour)
		default:
			return finite(val * MinutesPerMinute)
		}
	}

	val, ok := parseNumber(s)
	if !ok {
		return 0
	}
	return finite(val)
}

// parseNumber reads a plain number: a decimal float, or an unsigned integer
// with a 0x, 0o or 0b prefix. Digit separators are rejected.
func parseNumber(s string) (float64, bool) {
	if strings.ContainsRune(s, '_') {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if s[2] == '+' || s[2] == '-' {
				return 0, false
			}
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// IsDurationToken reports whether s is a well-formed "<digits><unit>" token
// or a finite plain number. Empty strings are not tokens.
func IsDurationToken(s string) bool {
	s = strings.TrimSpace(s)
	if durationToken.MatchString(s) {
		return true
	}
	val, ok := parseNumber(s)
	return ok && !math.IsInf(val, 0) && !math.IsNaN(val)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
