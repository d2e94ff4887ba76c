package mastertour

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials holds the Master Tour API consumer key pair used for two-legged
// OAuth 1.0a signing. There is no user access token; the signing key is the
// consumer secret alone. Credentials are supplied once at construction and
// must never be logged.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
}

// Signer produces OAuth 1.0a Authorization headers for outgoing requests
// using HMAC-SHA1 signatures. It is safe for concurrent use.
//
// The zero value is not usable; create instances with [NewSigner].
type Signer struct {
	creds Credentials

	// nonce and now are injectable for deterministic tests.
	nonce func() string
	now   func() time.Time
}

// NewSigner creates a Signer for the given credentials. Missing credentials
// are a construction-time error, never a per-call one.
func NewSigner(creds Credentials) (*Signer, error) {
	if creds.ConsumerKey == "" {
		return nil, errors.New("mastertour: consumer key must not be empty")
	}
	if creds.ConsumerSecret == "" {
		return nil, errors.New("mastertour: consumer secret must not be empty")
	}
	return &Signer{
		creds: creds,
		nonce: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
		now:   time.Now,
	}, nil
}

// Sign computes the OAuth 1.0a Authorization header value for a request.
// rawURL may carry a query string; its parameters participate in the
// signature together with params and the generated oauth_* protocol
// parameters. Each call uses a fresh nonce and the current Unix timestamp, so
// signing the same request twice yields different but equally valid headers.
func (s *Signer) Sign(method, rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("mastertour: sign: invalid url %q: %w", rawURL, err)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.creds.ConsumerKey,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_version":          "1.0",
	}

	sig := s.signature(method, u, params, oauthParams)

	// Header parameters are the oauth_* set plus the signature, each value
	// percent-encoded, in lexical key order.
	keys := make([]string, 0, len(oauthParams)+1)
	for k := range oauthParams {
		keys = append(keys, k)
	}
	keys = append(keys, "oauth_signature")
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := oauthParams[k]
		if k == "oauth_signature" {
			v = sig
		}
		parts = append(parts, k+`="`+percentEncode(v)+`"`)
	}
	return "OAuth " + strings.Join(parts, ", "), nil
}

// signature builds the RFC 5849 signature base string and returns its
// base64-encoded HMAC-SHA1 digest.
func (s *Signer) signature(method string, u *url.URL, params url.Values, oauthParams map[string]string) string {
	// Collect every parameter that participates in signing: query string,
	// caller-supplied values, and the oauth_* protocol set.
	type pair struct{ k, v string }
	var pairs []pair
	for k, vs := range u.Query() {
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, vs := range params {
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, v := range oauthParams {
		pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.k + "=" + p.v
	}
	paramString := strings.Join(encoded, "&")

	baseURL := u.Scheme + "://" + strings.ToLower(u.Host) + u.EscapedPath()
	base := strings.ToUpper(method) + "&" + percentEncode(baseURL) + "&" + percentEncode(paramString)

	// Two-legged OAuth: the token secret half of the key is empty.
	key := percentEncode(s.creds.ConsumerSecret) + "&"

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// percentEncode implements the strict RFC 3986 encoding OAuth requires:
// unreserved characters (A-Z a-z 0-9 - . _ ~) pass through, everything else
// becomes %XX with uppercase hex. Notably space is %20, never "+".
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}
