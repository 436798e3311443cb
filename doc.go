// Package netsuite is a client for the NetSuite REST API built around a
// resilient HTTP transport:
//
//   - Token-Based Authentication (OAuth 1.0a HMAC-SHA256), re-signed with a
//     fresh nonce on every physical attempt, retries included
//   - Retries with exponential backoff + jitter and a pluggable
//     retryability predicate
//   - Ordered middleware chain for cross-cutting concerns (caching, rate
//     limiting, tracing, header rewriting)
//   - One structured error type for every failure that leaves the client
//   - Auto-paginating SuiteQL queries, materialized or streamed page by page
//   - Prometheus metrics and injectable structured logging
//
// Typical usage:
//
//	client, err := netsuite.New(netsuite.Config{
//	    AccountID:      "1234567_SB1",
//	    ConsumerKey:    key,
//	    ConsumerSecret: secret,
//	    TokenKey:       token,
//	    TokenSecret:    tokenSecret,
//	},
//	    netsuite.WithMaxRetries(3),
//	    netsuite.WithRateLimiter(10, time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.Query(ctx, "SELECT id, email FROM customer", nil)
//
// Record CRUD (GetRecord, CreateRecord, ...) and RESTlet invocation
// (CallRestlet) are thin URL builders over the same transport, so every
// call shares the signing, retry and classification behavior.
package netsuite
