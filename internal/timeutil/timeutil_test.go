package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 14, 37, 9, 123, time.Local)
	got := StartOfDay(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "two digit hour", input: "08:00:00", want: 8 * time.Hour},
		{name: "single digit hour", input: "9:48:28", want: 9*time.Hour + 48*time.Minute + 28*time.Second},
		{name: "late evening", input: "23:59:59", want: 23*time.Hour + 59*time.Minute + 59*time.Second},
		{name: "whitespace", input: " 22:00:00 ", want: 22 * time.Hour},
		{name: "empty", input: "", wantErr: true},
		{name: "hour out of range", input: "25:00:00", wantErr: true},
		{name: "missing seconds", input: "08:00", wantErr: true},
		{name: "text", input: "morning", wantErr: true},
		{name: "bare hour", input: "17", wantErr: true},
		{name: "day fraction is not text", input: "0.5", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseClock(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected clock for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "slash pattern", input: "2026/03/05", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "single digit month and day", input: "2026/3/5", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "time part discarded", input: "2026/03/05 13:45:00", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "empty", input: "", wantErr: true},
		{name: "day first", input: "05.03.2026", wantErr: true},
		{name: "invalid month", input: "2026/13/01", wantErr: true},
		{name: "bare year", input: "2026", wantErr: true},
		{name: "serial is not text", input: "45658", wantErr: true},
		{name: "dash pattern", input: "2026-03-05", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(tc.input, time.UTC)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("unexpected date for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseClockSerial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "noon", input: "0.5", want: 12 * time.Hour},
		{name: "ten pm", input: "0.916666666666667", want: 22 * time.Hour},
		{name: "midnight", input: "0", want: 0},
		{name: "text clock", input: "08:30:00", want: 8*time.Hour + 30*time.Minute},
		{name: "whole day", input: "1", wantErr: true},
		{name: "datetime serial", input: "46000.75", wantErr: true},
		{name: "bare hour", input: "17", wantErr: true},
		{name: "negative fraction", input: "-0.25", wantErr: true},
		{name: "text", input: "late", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseClockSerial(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected clock for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseDateSerial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "excel serial", input: "45658", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "excel serial with fraction", input: "45658.6", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "text date", input: "2026/3/5", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "zero serial", input: "0", wantErr: true},
		{name: "text", input: "yesterday", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDateSerial(tc.input, time.UTC)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("unexpected date for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}
