package source

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/wealthview/internal/model"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-01", month(2024, time.January)},
		{"2024-01-31", month(2024, time.January)},
		{"2024-12", month(2024, time.December)},
		{"  2023-06-15 ", month(2023, time.June)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestParseMonth_Malformed(t *testing.T) {
	for _, input := range []string{"", "2024", "2024-13-01", "2024-02-30", "01/02/2024", "yesterday"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMonth(input)
			var mde *model.MalformedDateError
			if !errors.As(err, &mde) {
				t.Fatalf("ParseMonth(%q) err = %v, want MalformedDateError", input, err)
			}
		})
	}
}

func TestFormatMonth_RoundTrip(t *testing.T) {
	m := month(2022, time.November)
	got, err := ParseMonth(FormatMonth(m))
	if err != nil || !got.Equal(m) {
		t.Errorf("round trip = %v, %v", got, err)
	}
}

func FuzzParseMonth(f *testing.F) {
	f.Add("2024-01-01")
	f.Add("2024-02")
	f.Add("2024-13-45")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseMonth(s)
		if err != nil {
			return
		}
		if got.Day() != 1 || got.Hour() != 0 || got.Location() != time.UTC {
			t.Errorf("ParseMonth(%q) = %v, not normalized", s, got)
		}
	})
}
