// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mlaneve/trellodown/pkg/types"
)

// apiBase is the Trello REST API root used by the API-endpoint strategy.
// Declared as a var so tests can substitute an httptest server.
var apiBase = "https://api.trello.com/1"

// strategy is one retrieval method for attachment content. Strategies are
// tried in the fixed order of the strategies slice; the first success wins.
// attempt either returns the response body (HTTP 200) for the caller to
// write, or an error that moves control to the next strategy.
type strategy interface {
	name() string
	applicable(creds *types.Credentials) bool
	attempt(client *http.Client, userAgent string, card *types.Card, att *types.Attachment, creds *types.Credentials) (io.ReadCloser, error)
}

// strategies is the mandatory trial order: the card/attachment-scoped API
// endpoint, the attachment URL with credentials in the query string, then
// the bare attachment URL. The last entry is the only one attempted on
// unauthenticated runs.
var strategies = []strategy{apiStrategy{}, authQueryStrategy{}, plainStrategy{}}

// get issues a GET and returns the body on 200, or an error after draining
// and closing the body on any other status.
func get(client *http.Client, rawURL, userAgent, authorization string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		discard(resp)
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

func discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// apiStrategy downloads through the card/attachment-scoped API endpoint
// with an OAuth-style authorization header.
type apiStrategy struct{}

func (apiStrategy) name() string { return "api" }

func (apiStrategy) applicable(creds *types.Credentials) bool { return creds != nil }

func (apiStrategy) attempt(client *http.Client, userAgent string, card *types.Card, att *types.Attachment, creds *types.Credentials) (io.ReadCloser, error) {
	endpoint := fmt.Sprintf("%s/cards/%s/attachments/%s/download/%s",
		apiBase, card.ID, att.ID, url.PathEscape(att.Name))
	auth := fmt.Sprintf(`OAuth oauth_consumer_key="%s", oauth_token="%s"`,
		creds.APIKey, creds.Token)
	return get(client, endpoint, userAgent, auth)
}

// authQueryStrategy re-issues the attachment's own URL with key and token
// merged into any existing query string.
type authQueryStrategy struct{}

func (authQueryStrategy) name() string { return "auth-query" }

func (authQueryStrategy) applicable(creds *types.Credentials) bool { return creds != nil }

func (authQueryStrategy) attempt(client *http.Client, userAgent string, card *types.Card, att *types.Attachment, creds *types.Credentials) (io.ReadCloser, error) {
	u, err := url.Parse(att.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing attachment URL: %w", err)
	}
	q := u.Query()
	q.Set("key", creds.APIKey)
	q.Set("token", creds.Token)
	u.RawQuery = q.Encode()
	return get(client, u.String(), userAgent, "")
}

// plainStrategy issues an unauthenticated GET to the attachment URL,
// following a single 301/302 hop with a fresh unauthenticated GET. The hop
// never recurses and never re-adds credentials, matching the original
// exporter even when the redirected host might expect them.
type plainStrategy struct{}

func (plainStrategy) name() string { return "plain" }

func (plainStrategy) applicable(creds *types.Credentials) bool { return true }

func (plainStrategy) attempt(client *http.Client, userAgent string, card *types.Card, att *types.Attachment, creds *types.Credentials) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, att.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusMovedPermanently, http.StatusFound:
		loc, err := resp.Location()
		discard(resp)
		if err != nil {
			return nil, fmt.Errorf("redirect without Location from %s", att.URL)
		}
		return get(client, loc.String(), userAgent, "")
	default:
		status := resp.StatusCode
		discard(resp)
		return nil, fmt.Errorf("HTTP %d from %s", status, att.URL)
	}
}
