package setcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ikon/internal/core/ports"
)

// NodeID is the unique identifier for the set cache opener Graft node.
const NodeID graft.ID = "adapter.setcache"

func init() {
	graft.Register(graft.Node[ports.SetCacheOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SetCacheOpener, error) {
			return Opener{}, nil
		},
	})
}
