package gridserve

import (
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/taylorza/go-lfsr"
)

// idGenerator returns session IDs from the range (0,2^31], base-36 encoded.
// IDs don't repeat until ~2^32 have been generated.
type idGenerator struct {
	lock sync.Mutex
	next func() (uint32, bool)
}

func newIDGenerator() *idGenerator {
	gen := lfsr.NewLfsr32(rand.Uint32())
	return &idGenerator{next: gen.Next}
}

func (g *idGenerator) id() string {
	g.lock.Lock()
	defer g.lock.Unlock()

	for {
		id, restarted := g.next()
		if restarted {
			panic("generated ~32 bits of IDs")
		}

		if id == 0 || id&0x80000000 == 0x80000000 {
			continue // don't allow zero or anything with top bit
		}

		return strconv.FormatUint(uint64(id), 36)
	}
}
