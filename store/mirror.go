package store

import "log"

// MirrorBackend reads from the primary backend and writes through to both
// the primary and the mirror. Used to keep the server-side session mirror
// in step with the cookie ground truth: the cookie stays authoritative,
// mirror failures are logged and never fail the operation.
type MirrorBackend struct {
	primary Backend
	mirror  Backend
}

// NewMirrorBackend combines a primary backend with a best-effort mirror
func NewMirrorBackend(primary, mirror Backend) *MirrorBackend {
	return &MirrorBackend{primary: primary, mirror: mirror}
}

func (m *MirrorBackend) Get(key string) (string, bool) {
	return m.primary.Get(key)
}

func (m *MirrorBackend) Set(key, value string) error {
	if err := m.mirror.Set(key, value); err != nil {
		log.Printf("Failed to mirror %s: %v", key, err)
	}
	return m.primary.Set(key, value)
}

func (m *MirrorBackend) Delete(key string) error {
	if err := m.mirror.Delete(key); err != nil {
		log.Printf("Failed to remove mirrored %s: %v", key, err)
	}
	return m.primary.Delete(key)
}
