package shell

import (
	"context"

	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[ports.ShellDialect]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ShellDialect, error) {
			return New("")
		},
	})
}
