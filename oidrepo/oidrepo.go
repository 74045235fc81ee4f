// Package oidrepo fetches human-readable OID metadata from a remote OID
// repository and extracts structured fields from the returned HTML
// snippet. The network call is a thin collaborator around the extraction;
// ParseEntry works on any snippet obtained elsewhere.
package oidrepo

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// DefaultBaseURL is the repository endpoint; the OID is appended in
// dotted-numeric form.
const DefaultBaseURL = "https://oid-rep.orange-labs.fr/get/"

// Entry is the structured metadata extracted for one OID.
type Entry struct {
	OID         string `json:"oid" yaml:"oid"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Information string `json:"information,omitempty" yaml:"information,omitempty"`
}

// Field patterns for the repository's description table. The pages are
// not well-formed XML, so this is deliberately regex-based extraction of
// a few known cells rather than a DOM walk.
var (
	namePattern        = regexp.MustCompile(`(?is)<strong>\s*([A-Za-z][\w-]*)\s*\(\d+\)\s*</strong>`)
	descriptionPattern = regexp.MustCompile(`(?is)<th[^>]*>\s*Description\s*</th>\s*<td[^>]*>(.*?)</td>`)
	informationPattern = regexp.MustCompile(`(?is)<th[^>]*>\s*Information\s*</th>\s*<td[^>]*>(.*?)</td>`)
	tagPattern         = regexp.MustCompile(`(?s)<[^>]+>`)
)

// ParseEntry extracts the structured fields from an OID-repository HTML
// snippet. Missing fields are left empty; no field is an error.
func ParseEntry(oid, snippet string) Entry {
	e := Entry{OID: oid}
	if m := namePattern.FindStringSubmatch(snippet); m != nil {
		e.Name = m[1]
	}
	if m := descriptionPattern.FindStringSubmatch(snippet); m != nil {
		e.Description = cleanCell(m[1])
	}
	if m := informationPattern.FindStringSubmatch(snippet); m != nil {
		e.Information = cleanCell(m[1])
	}
	return e
}

// cleanCell strips markup and collapses whitespace in a table cell.
func cleanCell(cell string) string {
	text := tagPattern.ReplaceAllString(cell, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for fetches.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithBaseURL overrides the repository endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// Client fetches OID metadata from the remote repository.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient returns a Client with the default endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:    http.DefaultClient,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches and extracts the repository entry for a dotted OID.
func (c *Client) Lookup(ctx context.Context, oid string) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+oid, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("oidrepo: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("oidrepo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("oidrepo: %s returned status %d", oid, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Entry{}, fmt.Errorf("oidrepo: %w", err)
	}
	return ParseEntry(oid, string(body)), nil
}
