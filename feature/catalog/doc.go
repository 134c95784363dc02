// Package catalog implements the client for the BoardGameGeek XML API.
//
// The API exposes two read-only queries: a user's owned collection and the
// detail document for a single thing. Both return hierarchical XML; this
// package decodes them into Record values that the collection store can
// persist.
//
// # Rate limiting
//
// BGG throttles aggressively and answers HTTP 429 without a Retry-After
// hint. The client reacts by sleeping a fixed interval and repeating the
// same request. By default it retries forever, matching the upstream
// behavior of the service; RetryPolicy.MaxAttempts caps the loop for
// callers that need a bound.
//
// # Partial records
//
// The collection response omits several fields (weight, description,
// cooperative flag, recommended player count). A Record is partial until
// EnsureDetails has merged the per-thing detail document, after which its
// content hash is computed.
package catalog
