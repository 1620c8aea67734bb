package scoring

import "sync"

// addressLocks serializes user mutations per wallet address, so the
// precondition checks and the state transition of a completion or unlock
// are atomic with respect to concurrent requests for the same user.
type addressLocks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func (l *addressLocks) lock(address string) func() {
	l.mu.Lock()
	if l.held == nil {
		l.held = map[string]*sync.Mutex{}
	}
	m, ok := l.held[address]
	if !ok {
		m = &sync.Mutex{}
		l.held[address] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
