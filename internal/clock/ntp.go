package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/ntp"
)

// OffsetSetter receives a measured clock correction.
type OffsetSetter interface {
	SetOffset(offset time.Duration)
}

// NTPSyncer measures the host clock offset against an NTP server and applies it.
type NTPSyncer struct {
	Server  string
	Timeout time.Duration
	Target  OffsetSetter

	// query is swapped in tests.
	query func(host string, opt ntp.QueryOptions) (*ntp.Response, error)
}

// NewNTPSyncer returns a syncer correcting target against server.
func NewNTPSyncer(server string, target OffsetSetter) *NTPSyncer {
	return &NTPSyncer{
		Server:  server,
		Timeout: 5 * time.Second,
		Target:  target,
		query:   ntp.QueryWithOptions,
	}
}

// Sync performs a single NTP query. Retrying is the caller's business.
func (n *NTPSyncer) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := n.query(n.Server, ntp.QueryOptions{Timeout: n.Timeout})
	if err != nil {
		return fmt.Errorf("ntp query %s: %w", n.Server, err)
	}
	if err := resp.Validate(); err != nil {
		return fmt.Errorf("ntp response from %s: %w", n.Server, err)
	}

	n.Target.SetOffset(resp.ClockOffset)
	return nil
}
