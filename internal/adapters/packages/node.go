package packages

import (
	"context"
	"path/filepath"

	"github.com/SParksLz/rez/internal/adapters/config"
	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			repo := NewRepository(settings.PackagesPath)
			cache := NewResolveCache(filepath.Join(settings.CacheDir, "resolves"))
			return NewResolver(repo, cache), nil
		},
	})
}
