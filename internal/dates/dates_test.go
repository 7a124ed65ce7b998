package dates

import (
	"math"
	"testing"
)

func TestProjectEndDate(t *testing.T) {
	testCases := []struct {
		name   string
		start  string
		weeks  float64
		want   string
		wantOK bool
	}{
		{"iso two weeks", "2024-01-01", 2, "2024-01-14", true},
		{"german one week", "01.01.2024", 1, "2024-01-07", true},
		{"month boundary", "2024-01-29", 1, "2024-02-04", true},
		{"leap year", "26.02.2024", 1, "2024-03-03", true},
		{"single digit german", "5.3.2024", 4, "2024-04-01", true},
		{"iso with time", "2024-01-01T08:00:00", 1, "2024-01-07", true},
		{"half week", "2024-01-01", 0.5, "2024-01-03", true},
		{"tiny fraction stays on start", "2024-01-01", 0.1, "2024-01-01", true},
		{"long course", "2024-01-01", 52, "2024-12-29", true},
		{"empty start", "", 2, "", false},
		{"zero weeks", "2024-01-01", 0, "", false},
		{"negative weeks", "2024-01-01", -1, "", false},
		{"nan weeks", "2024-01-01", math.NaN(), "", false},
		{"inf weeks", "2024-01-01", math.Inf(1), "", false},
		{"invalid date", "31.02.2024", 1, "", false},
		{"garbage", "next monday", 1, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ProjectEndDate(tc.start, tc.weeks)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ProjectEndDate(%q, %v) = %q, %v; want %q, %v", tc.start, tc.weeks, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestToISO(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"31.01.2024", "2024-01-31"},
		{"1.2.2024", "2024-02-01"},
		{"2024-01-31", "2024-01-31"},
		{"2024-01-31T10:00:00", "2024-01-31T10:00:00"},
		{"", ""},
		{"Sommer 2024", "Sommer 2024"},
		{"32.01.2024", "32.01.2024"},
		{"01/31/2024", "01/31/2024"},
	}

	for _, tc := range testCases {
		result := ToISO(tc.input)
		if result != tc.expected {
			t.Errorf("ToISO(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}
