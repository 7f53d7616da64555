// Package fetch is the outbound HTTP layer shared by the weather providers,
// the reachability probe, the time zone lookup and the update checker.
//
// Every request runs under a retry.Policy, passes through a circuit breaker
// (github.com/sony/gobreaker) and an optional request rate limit
// (golang.org/x/time/rate). Failures are reported as *RequestError values
// carrying one of four causes:
//
//   - ErrTypeTimeout: the request deadline passed
//   - ErrTypeTransport: DNS, dial, TLS or read failures, and an open breaker
//   - ErrTypeDecode: the body could not be decoded
//   - ErrTypeStatus: the server answered with a non-2xx status
//
// Timeouts, transport failures, 429 and 5xx are retried. Other 4xx statuses
// and decode failures are returned after the first attempt.
package fetch
