package netsuite

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListOptions narrows a record list call via the standard query-string
// parameters of the record endpoint.
type ListOptions struct {
	// Query is a search filter expression, e.g. `email IS "a@b.com"`.
	Query string
	// Fields limits the returned fields.
	Fields []string
	Limit  int
	Offset int
	// ExpandSubResources inlines sublists and subrecords.
	ExpandSubResources bool
}

func (o *ListOptions) queryString() string {
	if o == nil {
		return ""
	}
	q := url.Values{}
	if o.Query != "" {
		q.Set("q", o.Query)
	}
	if len(o.Fields) > 0 {
		q.Set("fields", strings.Join(o.Fields, ","))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.ExpandSubResources {
		q.Set("expandSubResources", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// GetRecord fetches one record by internal id.
func (c *Client) GetRecord(ctx context.Context, recordType, id string) (*Response, error) {
	return c.Request(ctx, c.recordURL(recordType, id), nil)
}

// ListRecords fetches a page of records of the given type.
func (c *Client) ListRecords(ctx context.Context, recordType string, opts *ListOptions) (*Response, error) {
	return c.Request(ctx, c.recordURL(recordType)+opts.queryString(), nil)
}

// CreateRecord creates a record. The service replies 204 with the new id in
// the Location header; use CreatedRecordID to extract it.
func (c *Client) CreateRecord(ctx context.Context, recordType string, body any) (*Response, error) {
	return c.Request(ctx, c.recordURL(recordType), &RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
}

// UpdateRecord applies a partial update to a record.
func (c *Client) UpdateRecord(ctx context.Context, recordType, id string, body any) (*Response, error) {
	return c.Request(ctx, c.recordURL(recordType, id), &RequestOptions{
		Method: http.MethodPatch,
		Body:   body,
	})
}

// ReplaceRecord fully replaces a record.
func (c *Client) ReplaceRecord(ctx context.Context, recordType, id string, body any) (*Response, error) {
	return c.Request(ctx, c.recordURL(recordType, id), &RequestOptions{
		Method: http.MethodPut,
		Body:   body,
	})
}

// DeleteRecord deletes a record by internal id.
func (c *Client) DeleteRecord(ctx context.Context, recordType, id string) (*Response, error) {
	return c.Request(ctx, c.recordURL(recordType, id), &RequestOptions{
		Method: http.MethodDelete,
	})
}

// UpsertRecord creates or updates a record addressed by an external id
// field, using the endpoint's eid path variant with PUT semantics.
func (c *Client) UpsertRecord(ctx context.Context, recordType, field, value string, body any) (*Response, error) {
	target := c.recordURL(recordType) + "/eid:" + url.PathEscape(field) + "=" + url.PathEscape(value)
	return c.Request(ctx, target, &RequestOptions{
		Method: http.MethodPut,
		Body:   body,
	})
}

// CreatedRecordID extracts the new record's id from the Location header of
// a create response. Returns "" when the header is absent.
func CreatedRecordID(resp *Response) string {
	if resp == nil {
		return ""
	}
	loc := resp.Headers["location"]
	if loc == "" {
		return ""
	}
	if i := strings.LastIndexByte(loc, '/'); i >= 0 {
		return loc[i+1:]
	}
	return loc
}
