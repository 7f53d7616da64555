// Package retry implements the bounded retry-with-fixed-delay policy used by
// every network operation of the display.
//
// An operation is invoked up to MaxAttempts times with Delay between attempts.
// The first success is returned immediately. When the budget runs out the
// caller gets an *ExhaustedError, never a zero value posing as a result, so it
// can decide whether exhaustion is fatal (internet validation escalates to a
// reset) or tolerable (clock sync keeps the stale clock).
//
//	ip, err := retry.Do(ctx, retry.Policy{MaxAttempts: 5, Delay: 5 * time.Second}, "probe",
//	    func(ctx context.Context) (string, error) { return prober.Probe(ctx) })
//	if retry.IsExhausted(err) {
//	    // degrade or escalate
//	}
//
// Errors wrapped with Permanent stop the loop after the current attempt.
// Budgets are created per call and never persisted.
package retry
