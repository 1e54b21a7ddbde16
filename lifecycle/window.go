package lifecycle

import "time"

// UpdateWindow returns the span during which any of the given kickoffs can
// still change status: from LiveWindow before the earliest kickoff to
// LiveWindow after the latest one. ok is false when kickoffs is empty.
func UpdateWindow(kickoffs []time.Time) (start, end time.Time, ok bool) {
	if len(kickoffs) == 0 {
		return time.Time{}, time.Time{}, false
	}

	earliest, latest := kickoffs[0], kickoffs[0]
	for _, k := range kickoffs[1:] {
		if k.Before(earliest) {
			earliest = k
		}
		if k.After(latest) {
			latest = k
		}
	}
	return earliest.Add(-LiveWindow), latest.Add(LiveWindow), true
}

// InUpdateWindow reports whether now lies inside UpdateWindow(kickoffs),
// bounds included.
func InUpdateWindow(kickoffs []time.Time, now time.Time) bool {
	start, end, ok := UpdateWindow(kickoffs)
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}
