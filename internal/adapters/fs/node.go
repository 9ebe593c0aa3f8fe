package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ikon/internal/core/ports"
)

// SourceNodeID is the unique identifier for the set source Graft node.
const SourceNodeID graft.ID = "adapter.fs.source"

func init() {
	graft.Register(graft.Node[ports.SetSource]{
		ID:        SourceNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SetSource, error) {
			return NewSource(), nil
		},
	})
}
