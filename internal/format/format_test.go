package format

import (
	"reflect"
	"testing"
)

func TestField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"&quot;The Venue&quot;", `"The Venue"`},
		{"O&#39;Brien&#039;s", "O'Brien's"},
		{"a &lt;b&gt; c", "a <b> c"},
		{"  padded\t", "padded"},
		{"&amp;quot;once&amp;quot;", "&quot;once&quot;"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Field(tc.in); got != tc.want {
			t.Errorf("Field(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"2026-01-03", "Sat, Jan 3, 2026"},
		{"2026-01-03 00:00:00", "Sat, Jan 3, 2026"},
		{"2024-07-15", "Mon, Jul 15, 2024"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Date(tc.in); got != tc.want {
			t.Errorf("Date(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"22:00", "10:00 PM"},
		{"09:05", "9:05 AM"},
		{"00:00", "12:00 AM"},
		{"12:30", "12:30 PM"},
		{"late", "late"},
	}
	for _, tc := range tests {
		if got := Clock(tc.in); got != tc.want {
			t.Errorf("Clock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		city, state, country, want string
	}{
		{"Austin", "TX", "United States", "Austin, TX, United States"},
		{"Amsterdam", "", "Netherlands", "Amsterdam, Netherlands"},
		{"", "", "", ""},
		{" Paris ", "", "", "Paris"},
	}
	for _, tc := range tests {
		if got := Location(tc.city, tc.state, tc.country); got != tc.want {
			t.Errorf("Location(%q,%q,%q) = %q, want %q", tc.city, tc.state, tc.country, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Rock & Roll's", "rock  rolls"},
		{"  The Fillmore  ", "the fillmore"},
		{"St. James' Hall (Main)", "st james hall main"},
		{"9:30 Club", "930 club"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	got := Tokens("  Red ROCKS  Morrison ")
	want := []string{"red", "rocks", "morrison"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
	if got := Tokens("   "); len(got) != 0 {
		t.Errorf("Tokens(blank) = %v, want empty", got)
	}
	got = Tokens("Roll's & co.")
	want = []string{"rolls", "co"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}
