package netsuite

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const (
	defaultPageSize = 1000
	// maxPageSize is the service's page-size ceiling for SuiteQL.
	maxPageSize = 1000
)

// QueryOptions controls SuiteQL pagination.
type QueryOptions struct {
	// PageSize is the per-request row limit, defaulting to 1000 and
	// capped at the service ceiling.
	PageSize int
	// Offset is the starting row cursor.
	Offset int
	// MaxRows bounds the total rows fetched; 0 means unbounded.
	MaxRows int
	// Timeout overrides the client timeout for each page request.
	Timeout time.Duration
}

// QueryPage is one page of a SuiteQL result.
type QueryPage struct {
	Items        []map[string]any
	TotalResults int
	HasMore      bool
	Offset       int
}

// QueryResult is a fully materialized SuiteQL result set.
type QueryResult struct {
	Items        []map[string]any
	TotalResults int
	PagesFetched int
	// HasMore is true when the accumulated rows fall short of the
	// server-reported total, e.g. because MaxRows cut the fetch off.
	HasMore bool
	Elapsed time.Duration
}

// suiteQLEnvelope is the wire shape of one SuiteQL response page.
type suiteQLEnvelope struct {
	Items        []map[string]any `json:"items"`
	TotalResults int              `json:"totalResults"`
	HasMore      bool             `json:"hasMore"`
	Offset       int              `json:"offset"`
	Count        int              `json:"count"`
}

func (c *Client) normalizeQueryOptions(opts *QueryOptions) QueryOptions {
	var o QueryOptions
	if opts != nil {
		o = *opts
	}
	if o.PageSize <= 0 {
		o.PageSize = c.pageSize
	}
	if o.PageSize <= 0 || o.PageSize > maxPageSize {
		o.PageSize = defaultPageSize
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.MaxRows < 0 {
		o.MaxRows = 0
	}
	return o
}

// Query runs a SuiteQL query and materializes every page into one result
// set, fetching pages sequentially in offset order.
func (c *Client) Query(ctx context.Context, query string, opts *QueryOptions) (*QueryResult, error) {
	start := time.Now()

	it := c.QueryPages(query, opts)
	result := &QueryResult{}
	for it.Next(ctx) {
		page := it.Page()
		result.Items = append(result.Items, page.Items...)
		result.TotalResults = page.TotalResults
		result.PagesFetched++
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	result.HasMore = len(result.Items) < result.TotalResults
	result.Elapsed = time.Since(start)

	c.logger.Debug("query materialized",
		"rows", len(result.Items), "pages", result.PagesFetched,
		"totalResults", result.TotalResults, "hasMore", result.HasMore)
	return result, nil
}

// QueryOne runs query capped at a single row and reports whether a row was
// found. A query matching nothing is not an error.
func (c *Client) QueryOne(ctx context.Context, query string, opts *QueryOptions) (map[string]any, bool, error) {
	o := c.normalizeQueryOptions(opts)
	o.MaxRows = 1
	o.PageSize = 1

	result, err := c.Query(ctx, query, &o)
	if err != nil {
		return nil, false, err
	}
	if len(result.Items) == 0 {
		return nil, false, nil
	}
	return result.Items[0], true, nil
}

// QueryPages returns a single-pass page iterator over query. Pages are
// fetched lazily, one in flight at a time, in strict offset order:
//
//	it := client.QueryPages("SELECT id FROM transaction", nil)
//	for it.Next(ctx) {
//	    process(it.Page())
//	}
//	if err := it.Err(); err != nil { ... }
//
// The iterator is not restartable; once exhausted or failed it stays done.
func (c *Client) QueryPages(query string, opts *QueryOptions) *PageIterator {
	return &PageIterator{
		client: c,
		query:  query,
		opts:   c.normalizeQueryOptions(opts),
	}
}

// PageIterator walks a SuiteQL result one page at a time.
type PageIterator struct {
	client  *Client
	query   string
	opts    QueryOptions
	offset  int
	fetched int
	started bool
	done    bool
	page    *QueryPage
	err     error
}

// Next fetches the next page, reporting whether one is available. It stops
// when the server signals no more pages and the local count agrees, when
// MaxRows is reached, when a page arrives empty, or on error.
func (it *PageIterator) Next(ctx context.Context) bool {
	if it.done || it.err != nil {
		return false
	}
	if !it.started {
		it.offset = it.opts.Offset
		it.started = true
	}

	limit := it.opts.PageSize
	if it.opts.MaxRows > 0 {
		remaining := it.opts.MaxRows - it.fetched
		if remaining <= 0 {
			it.done = true
			return false
		}
		if remaining < limit {
			limit = remaining
		}
	}

	page, err := it.client.fetchPage(ctx, it.query, limit, it.offset, it.opts.Timeout)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	if len(page.Items) == 0 {
		it.done = true
		return false
	}

	it.page = page
	it.fetched += len(page.Items)
	it.offset += len(page.Items)

	// The server-reported flag and the local count comparison can disagree
	// when totalResults is stale; stop only when both say there is nothing
	// left, matching the service's own pagination semantics.
	if !page.HasMore && it.offset >= page.TotalResults {
		it.done = true
	}
	return true
}

// Page returns the page fetched by the last successful Next.
func (it *PageIterator) Page() *QueryPage {
	return it.page
}

// Err returns the error that stopped iteration, if any.
func (it *PageIterator) Err() error {
	return it.err
}

// fetchPage issues one SuiteQL page request. Every page request carries the
// Prefer: transient header so the service does not persist query state.
func (c *Client) fetchPage(ctx context.Context, query string, limit, offset int, timeout time.Duration) (*QueryPage, error) {
	resp, err := c.Request(ctx, c.suiteQLURL(limit, offset), &RequestOptions{
		Method:  http.MethodPost,
		Headers: map[string]string{"Prefer": "transient"},
		Body:    map[string]string{"q": query},
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}

	var envelope suiteQLEnvelope
	if len(resp.Raw) == 0 {
		return &QueryPage{Offset: offset}, nil
	}
	if err := json.Unmarshal(resp.Raw, &envelope); err != nil {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Code:       CodeEncoding,
			Message:    "failed to decode query response",
			URL:        c.suiteQLURL(limit, offset),
			Method:     http.MethodPost,
			Cause:      err,
		}
	}

	if c.metrics != nil {
		c.metrics.RecordQueryPage(len(envelope.Items))
	}
	return &QueryPage{
		Items:        envelope.Items,
		TotalResults: envelope.TotalResults,
		HasMore:      envelope.HasMore,
		Offset:       envelope.Offset,
	}, nil
}

// EscapeString escapes a literal for embedding in a SuiteQL string: single
// quotes are doubled.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
