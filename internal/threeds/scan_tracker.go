package threeds

import "sync"

// scanTracker counts running scans and exposes a channel closed while none run.
type scanTracker struct {
	mu       sync.Mutex
	active   int
	idleChan chan struct{}
}

func newScanTracker() *scanTracker {
	idleChan := make(chan struct{})
	close(idleChan)

	return &scanTracker{idleChan: idleChan}
}

// begin registers a running scan.
func (t *scanTracker) begin() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == 0 {
		t.idleChan = make(chan struct{})
	}

	t.active++
}

// end unregisters a scan and releases waiters when it was the last one.
func (t *scanTracker) end() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == 0 {
		return
	}

	t.active--
	if t.active == 0 {
		close(t.idleChan)
	}
}

// idle returns a channel that is closed when no scan is running.
func (t *scanTracker) idle() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.idleChan
}
