package utils

import "time"

// DeltaTimer measures the time between consecutive frames. The zero value is
// ready to use; the first call to Next returns 0.
type DeltaTimer struct {
	last time.Time
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d *DeltaTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := d.now()

	defer func() { d.last = now }()
	if d.last.IsZero() {
		return 0
	}
	return now.Sub(d.last)
}

func (d *DeltaTimer) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
