package mastertour

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newFixedSigner(t *testing.T, nonce string, ts int64) *Signer {
	t.Helper()
	s, err := NewSigner(Credentials{ConsumerKey: "key123", ConsumerSecret: "secret456"})
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	s.nonce = func() string { return nonce }
	s.now = func() time.Time { return time.Unix(ts, 0) }
	return s
}

func TestNewSigner_RejectsEmptyCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewSigner(Credentials{ConsumerSecret: "s"}); err == nil {
		t.Error("empty consumer key: got nil error")
	}
	if _, err := NewSigner(Credentials{ConsumerKey: "k"}); err == nil {
		t.Error("empty consumer secret: got nil error")
	}
}

func TestSign_HeaderShape(t *testing.T) {
	s := newFixedSigner(t, "abcdef", 1700000000)

	header, err := s.Sign("GET", "https://my.eventric.com/portal/api/v5/tours", url.Values{"version": {"7"}})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !strings.HasPrefix(header, "OAuth ") {
		t.Fatalf("header = %q, want OAuth prefix", header)
	}
	for _, want := range []string{
		`oauth_consumer_key="key123"`,
		`oauth_nonce="abcdef"`,
		`oauth_signature_method="HMAC-SHA1"`,
		`oauth_timestamp="1700000000"`,
		`oauth_version="1.0"`,
		`oauth_signature="`,
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header %q missing %q", header, want)
		}
	}

	// Parameters must appear in lexical key order.
	order := []string{"oauth_consumer_key", "oauth_nonce", "oauth_signature", "oauth_signature_method", "oauth_timestamp", "oauth_version"}
	last := -1
	for _, k := range order {
		idx := strings.Index(header, k+`="`)
		if idx < 0 {
			t.Fatalf("header missing %s", k)
		}
		if idx < last {
			t.Errorf("parameter %s out of lexical order", k)
		}
		last = idx
	}
}

// TestSign_SignatureValue recomputes the RFC 5849 base string by hand for a
// simple request and checks the header carries exactly that HMAC-SHA1 digest.
func TestSign_SignatureValue(t *testing.T) {
	s := newFixedSigner(t, "abcdef", 1700000000)

	header, err := s.Sign("GET", "https://my.eventric.com/portal/api/v5/tours", url.Values{"version": {"7"}})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	paramString := strings.Join([]string{
		"oauth_consumer_key=key123",
		"oauth_nonce=abcdef",
		"oauth_signature_method=HMAC-SHA1",
		"oauth_timestamp=1700000000",
		"oauth_version=1.0",
		"version=7",
	}, "&")
	base := "GET&" +
		percentEncode("https://my.eventric.com/portal/api/v5/tours") + "&" +
		percentEncode(paramString)

	mac := hmac.New(sha1.New, []byte("secret456&"))
	mac.Write([]byte(base))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	got := headerParam(t, header, "oauth_signature")
	decoded, err := url.QueryUnescape(got)
	if err != nil {
		t.Fatalf("unescape signature %q: %v", got, err)
	}
	if decoded != want {
		t.Errorf("signature = %q, want %q", decoded, want)
	}
}

func TestSign_QueryStringParticipates(t *testing.T) {
	s := newFixedSigner(t, "n", 1700000000)

	plain, err := s.Sign("GET", "https://example.com/api/day/5", nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	withQuery, err := s.Sign("GET", "https://example.com/api/day/5?filter=x", nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if headerParam(t, plain, "oauth_signature") == headerParam(t, withQuery, "oauth_signature") {
		t.Error("query string did not affect the signature")
	}
}

func TestSign_FreshNoncePerCall(t *testing.T) {
	t.Parallel()

	s, err := NewSigner(Credentials{ConsumerKey: "k", ConsumerSecret: "s"})
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	a, err := s.Sign("GET", "https://example.com/x", nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	b, err := s.Sign("GET", "https://example.com/x", nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if headerParam(t, a, "oauth_nonce") == headerParam(t, b, "oauth_nonce") {
		t.Error("two calls produced the same nonce")
	}
}

func TestPercentEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"abcXYZ019-._~", "abcXYZ019-._~"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"ü", "%C3%BC"},
		{"k&v=1", "k%26v%3D1"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := percentEncode(tc.in); got != tc.want {
			t.Errorf("percentEncode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// headerParam extracts the raw (still percent-encoded) value of an OAuth
// header parameter.
func headerParam(t *testing.T, header, key string) string {
	t.Helper()
	idx := strings.Index(header, key+`="`)
	if idx < 0 {
		t.Fatalf("header %q missing %s", header, key)
	}
	rest := header[idx+len(key)+2:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		t.Fatalf("header %q has unterminated %s", header, key)
	}
	return rest[:end]
}
