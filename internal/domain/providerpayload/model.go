package providerpayload

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Payload is a raw provider response kept for replay and debugging,
// keyed by (source, entity type, entity key) so refetches overwrite the
// previous snapshot instead of accumulating.
type Payload struct {
	Source     string
	EntityType string
	EntityKey  string
	Body       []byte
	BodyHash   string
	FetchedAt  time.Time
}

// HashBody fills BodyHash from the raw bytes.
func (p *Payload) HashBody() {
	sum := sha256.Sum256(p.Body)
	p.BodyHash = hex.EncodeToString(sum[:])
}
