// Package format holds the small text helpers the tool layer shares: HTML
// entity cleanup for API fields, date and clock rendering, location lines,
// and search normalization.
package format

import (
	"regexp"
	"strings"
	"time"
)

// entities are the HTML entities the Master Tour API is known to leave in
// free-text fields. "&amp;" is replaced last so double-encoded input decodes
// one level per pass instead of collapsing.
var entities = strings.NewReplacer(
	"&quot;", `"`,
	"&#39;", "'",
	"&#039;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

// Field cleans a free-text API field: decodes HTML entities and trims
// surrounding whitespace.
func Field(s string) string {
	s = entities.Replace(s)
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.TrimSpace(s)
}

// Date renders a "YYYY-MM-DD" date (a wire datetime's date part is accepted
// too) as "Mon, Jan 2, 2006". Unparsable input is returned unchanged.
func Date(s string) string {
	d := s
	if len(d) > 10 {
		d = d[:10]
	}
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return s
	}
	return t.Format("Mon, Jan 2, 2006")
}

// Clock renders a 24-hour "HH:MM" clock as "3:04 PM". Unparsable input is
// returned unchanged.
func Clock(s string) string {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}

// Location joins the non-empty parts of a place into "City, State, Country".
func Location(city, state, country string) string {
	var parts []string
	for _, p := range []string{city, state, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// punctuation matches everything search normalization drops. Whitespace is
// kept so token boundaries survive.
var punctuation = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lowercases, trims, and strips punctuation from a string for
// matching, so "Rock & Roll's" and a query for "rolls" meet in the middle.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return punctuation.ReplaceAllString(s, "")
}

// Tokens splits a query into normalized whitespace-separated tokens.
func Tokens(q string) []string {
	return strings.Fields(Normalize(q))
}
