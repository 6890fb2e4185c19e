package schedule

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

type fixedMinutes float64

func (f fixedMinutes) Minutes() float64 { return float64(f) }

func TestParseDurationToMinutes(t *testing.T) {
	ninety := 90
	var nilPtr *int

	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"days", "14d", 20160},
		{"hours", "2h", 120},
		{"minutes", "120m", 120},
		{"bare numeric string", "45", 45},
		{"nil", nil, 0},
		{"garbage", "garbage", 0},
		{"int", 90, 90},
		{"int64", int64(30), 30},
		{"uint", uint(15), 15},
		{"float", 1.5, 1.5},
		{"float32", float32(2.5), 2.5},
		{"pointer", &ninety, 90},
		{"nil pointer", nilPtr, 0},
		{"upper case unit", "3H", 180},
		{"whitespace before unit", " 2 d ", 2880},
		{"zero minutes", "0m", 0},
		{"decimal string", "12.5", 12.5},
		{"negative string", "-5", -5},
		{"empty string", "", 0},
		{"blank string", "   ", 0},
		{"unit without digits", "h", 0},
		{"fractional token is not a token", "1.5h", 0},
		{"unknown unit", "3w", 0},
		{"infinity string", "Inf", 0},
		{"NaN string", "NaN", 0},
		{"NaN float", math.NaN(), 0},
		{"infinite float", math.Inf(1), 0},
		{"json number", json.Number("60"), 60},
		{"json number token", json.Number("7"), 7},
		{"time.Duration", 90 * time.Minute, 90},
		{"minuter", fixedMinutes(42), 42},
		{"bool", true, 0},
		{"struct", struct{}{}, 0},
		{"hex integer", "0x10", 16},
		{"octal integer", "0o17", 15},
		{"binary integer", "0B101", 5},
		{"signed hex", "-0x10", 0},
		{"hex float", "0x1p4", 0},
		{"prefix only", "0x", 0},
		{"digit separators", "1_000", 0},
		{"exponent", "1e3", 1000},
		{"huge token", "99999999999999999999d", 1.44e23},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseDurationToMinutes(tc.value); got != tc.want {
				t.Errorf("ParseDurationToMinutes(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestIsDurationToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"14d", true},
		{"2 H", true},
		{"45", true},
		{"7.5", true},
		{"", false},
		{"garbage", false},
		{"Inf", false},
		{"1.5h", false},
		{"0x10", true},
		{"1_000", false},
		{"0x-1", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := IsDurationToken(tc.in); got != tc.want {
				t.Errorf("IsDurationToken(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
