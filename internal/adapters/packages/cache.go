package packages

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/cespare/xxhash/v2"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// ResolveCache stores resolve results as flat JSON files keyed by a
// deterministic hash of the request. Cache writes are best-effort; a failed
// write never fails the resolve.
type ResolveCache struct {
	dir string
}

// NewResolveCache creates a cache rooted at dir.
func NewResolveCache(dir string) *ResolveCache {
	return &ResolveCache{dir: dir}
}

// Key hashes the request fields that determine a resolve outcome.
func (c *ResolveCache) Key(req ports.ResolveRequest) string {
	var b strings.Builder
	b.WriteString(strings.Join(req.Packages, ";"))
	b.WriteString("|")
	b.WriteString(string(req.Mode))
	fmt.Fprintf(&b, "|%d|", req.Timestamp)
	b.WriteString(strings.Join(req.SearchPaths, ";"))
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

// Get returns the cached result for the request, if any.
func (c *ResolveCache) Get(req ports.ResolveRequest) (*domain.ResolveResult, bool) {
	data, err := os.ReadFile(c.path(req)) //nolint:gosec // path is under the trusted cache dir
	if err != nil {
		return nil, false
	}
	var result domain.ResolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Put stores a result for the request.
func (c *ResolveCache) Put(req ports.ResolveRequest, result *domain.ResolveResult) {
	if err := os.MkdirAll(c.dir, dirPerm); err != nil {
		return
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path(req), data, filePerm)
}

func (c *ResolveCache) path(req ports.ResolveRequest) string {
	return filepath.Join(c.dir, c.Key(req)+".json")
}
