package netsuite

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signer produces Token-Based Authentication (TBA) authorization headers:
// an OAuth 1.0a credential signed with HMAC-SHA256. Every call generates a
// fresh nonce and timestamp, so a signed header set is valid for exactly one
// physical request attempt and is never reused across retries.
type Signer struct {
	consumerKey    string
	consumerSecret string
	tokenKey       string
	tokenSecret    string
	realm          string

	// Overridable for deterministic tests.
	now   func() time.Time
	nonce func() string
}

func newSigner(cfg Config) *Signer {
	return &Signer{
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		tokenKey:       cfg.TokenKey,
		tokenSecret:    cfg.TokenSecret,
		realm:          cfg.AccountID,
		now:            time.Now,
		nonce:          newNonce,
	}
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Headers returns the authorization header set for one attempt of a request
// to rawURL with the given method. The only failure mode is an unparseable
// URL; credential problems are rejected at client construction.
func (s *Signer) Headers(rawURL, method string) (map[string]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url for signing: %w", err)
	}

	nonce := s.nonce()
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.consumerKey,
		"oauth_token":            s.tokenKey,
		"oauth_signature_method": "HMAC-SHA256",
		"oauth_timestamp":        timestamp,
		"oauth_nonce":            nonce,
		"oauth_version":          "1.0",
	}

	signature := s.sign(u, strings.ToUpper(method), oauthParams)

	var b strings.Builder
	b.WriteString(`OAuth realm="`)
	b.WriteString(percentEncode(s.realm))
	b.WriteString(`"`)
	for _, k := range []string{
		"oauth_consumer_key",
		"oauth_token",
		"oauth_signature_method",
		"oauth_timestamp",
		"oauth_nonce",
		"oauth_version",
	} {
		b.WriteString(", ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(percentEncode(oauthParams[k]))
		b.WriteString(`"`)
	}
	b.WriteString(`, oauth_signature="`)
	b.WriteString(percentEncode(signature))
	b.WriteString(`"`)

	return map[string]string{"Authorization": b.String()}, nil
}

// sign computes the HMAC-SHA256 signature over the OAuth base string built
// from the method, the base URL and the sorted union of OAuth and query
// parameters.
func (s *Signer) sign(u *url.URL, method string, oauthParams map[string]string) string {
	type pair struct{ k, v string }
	var pairs []pair
	for k, v := range oauthParams {
		pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
	}
	for k, vs := range u.Query() {
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	var params strings.Builder
	for i, p := range pairs {
		if i > 0 {
			params.WriteByte('&')
		}
		params.WriteString(p.k)
		params.WriteByte('=')
		params.WriteString(p.v)
	}

	baseURL := u.Scheme + "://" + strings.ToLower(u.Host) + u.EscapedPath()
	base := method + "&" + percentEncode(baseURL) + "&" + percentEncode(params.String())

	key := percentEncode(s.consumerSecret) + "&" + percentEncode(s.tokenSecret)
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// percentEncode applies RFC 3986 encoding: everything except unreserved
// characters is escaped, with uppercase hex digits.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
			c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
		} else {
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}
