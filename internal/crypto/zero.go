package crypto

// Zero overwrites a byte slice in memory with zeros.
// This version works on all operating systems.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SecretBytes owns a sensitive buffer (master key, decrypted payload) for
// the lifetime of an unlocked session. The buffer is mlocked best effort and
// must be wiped on every path that leaves the unlocked state.
type SecretBytes struct {
	b     []byte
	wiped bool
}

// NewSecretBytes takes ownership of b. The caller must not retain b.
func NewSecretBytes(b []byte) *SecretBytes {
	_ = lockMemory(b)
	return &SecretBytes{b: b}
}

// Bytes exposes the underlying buffer. Callers must not copy it beyond the
// secret's lifetime.
func (s *SecretBytes) Bytes() []byte {
	return s.b
}

// Wipe zeroes the buffer and releases the memory lock. Safe to call more
// than once.
func (s *SecretBytes) Wipe() {
	if s == nil || s.wiped {
		return
	}
	Zero(s.b)
	_ = unlockMemory(s.b)
	s.wiped = true
}

// Wiped reports whether the buffer has been zeroed. Test hook for the
// secret-lifetime contract.
func (s *SecretBytes) Wiped() bool {
	if s == nil {
		return true
	}
	if !s.wiped {
		return false
	}
	for _, c := range s.b {
		if c != 0 {
			return false
		}
	}
	return true
}
