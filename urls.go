package netsuite

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	recordPath  = "/services/rest/record/v1"
	suiteQLPath = "/services/rest/query/v1/suiteql"
	restletPath = "/app/site/hosting/restlet.nl"
)

// NormalizeAccountID converts an account identifier to its host form:
// lower-cased with underscores replaced by hyphens, so the sandbox account
// "1234567_SB1" becomes "1234567-sb1". Already-normalized identifiers pass
// through unchanged. Every host the client builds goes through this.
func NormalizeAccountID(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), "_", "-")
}

// restBaseURL is the SuiteTalk REST services origin.
func (c *Client) restBaseURL() string {
	if c.restBase != "" {
		return c.restBase
	}
	return "https://" + NormalizeAccountID(c.cfg.AccountID) + ".suitetalk.api.netsuite.com"
}

// restletBaseURL is the RESTlet hosting origin.
func (c *Client) restletBaseURL() string {
	if c.restletBase != "" {
		return c.restletBase
	}
	return "https://" + NormalizeAccountID(c.cfg.AccountID) + ".restlets.api.netsuite.com"
}

func (c *Client) recordURL(recordType string, parts ...string) string {
	var b strings.Builder
	b.WriteString(c.restBaseURL())
	b.WriteString(recordPath)
	b.WriteByte('/')
	b.WriteString(url.PathEscape(recordType))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

func (c *Client) suiteQLURL(limit, offset int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return c.restBaseURL() + suiteQLPath + "?" + q.Encode()
}

func (c *Client) restletURL(scriptID, deployID string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("script", scriptID)
	q.Set("deploy", deployID)
	return c.restletBaseURL() + restletPath + "?" + q.Encode()
}
