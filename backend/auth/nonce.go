package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// NonceStore issues single-use login nonces with an expiry. A nonce must be
// consumed by the login that presents it; a second use fails.
type NonceStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	issued map[string]time.Time
}

func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{
		ttl:    ttl,
		issued: map[string]time.Time{},
	}
}

// Issue generates a fresh 16-byte hex nonce and records it.
func (s *NonceStore) Issue() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.issued[nonce] = time.Now().Add(s.ttl)
	return nonce, nil
}

// Consume removes the nonce and reports whether it was issued by this store
// and has not expired.
func (s *NonceStore) Consume(nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.issued[nonce]
	if !ok {
		return false
	}
	delete(s.issued, nonce)
	return time.Now().Before(expiry)
}

// prune drops expired nonces. Caller holds the lock.
func (s *NonceStore) prune() {
	now := time.Now()
	for nonce, expiry := range s.issued {
		if now.After(expiry) {
			delete(s.issued, nonce)
		}
	}
}
