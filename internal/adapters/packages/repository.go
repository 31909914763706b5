// Package packages implements the filesystem package repository and the
// default resolver adapter built on it.
package packages

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/SParksLz/rez/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// MetadataFile is the per-version package metadata file name.
const MetadataFile = "package.yaml"

// Repository scans package search paths laid out as
// <path>/<name>/<version>/package.yaml.
type Repository struct {
	paths []string
}

// NewRepository creates a repository over the given search paths, in order.
func NewRepository(paths []string) *Repository {
	return &Repository{paths: append([]string(nil), paths...)}
}

// SearchPaths returns the repository's search paths.
func (r *Repository) SearchPaths() []string {
	return append([]string(nil), r.paths...)
}

// versionEntry is one discovered package version.
type versionEntry struct {
	pkg domain.ResolvedPackage

	// released is the metadata file's mtime, the repository's notion of
	// release time for timestamp-bounded resolves.
	released int64
}

// versions returns every version of the named package across the given
// search paths, sorted ascending by version. Earlier search paths win on
// version collisions.
func (r *Repository) versions(name string, paths []string) ([]versionEntry, error) {
	if len(paths) == 0 {
		paths = r.paths
	}

	seen := make(map[string]bool)
	var entries []versionEntry
	for _, root := range paths {
		base := filepath.Join(root, name)
		dirs, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, dir := range dirs {
			if !dir.IsDir() || seen[dir.Name()] {
				continue
			}
			entry, err := r.loadVersion(name, base, dir.Name())
			if err != nil {
				return nil, err
			}
			if entry != nil {
				seen[dir.Name()] = true
				entries = append(entries, *entry)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].pkg.Version.Compare(entries[j].pkg.Version) < 0
	})
	return entries, nil
}

// loadVersion reads one version directory; a missing metadata file means the
// directory is not a package version and is skipped.
func (r *Repository) loadVersion(name, base, version string) (*versionEntry, error) {
	root := filepath.Join(base, version)
	metaFile := filepath.Join(root, MetadataFile)

	info, err := os.Stat(metaFile)
	if err != nil {
		return nil, nil //nolint:nilnil // absence is not an error here
	}

	data, err := os.ReadFile(metaFile) //nolint:gosec // path is under a configured search path
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read package metadata"), "metafile", metaFile)
	}

	var metadata map[string]any
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse package metadata"), "metafile", metaFile)
	}

	return &versionEntry{
		pkg: domain.ResolvedPackage{
			Name:     name,
			Version:  domain.ParseVersion(version),
			Root:     root,
			Base:     base,
			MetaFile: metaFile,
			Metadata: metadata,
		},
		released: info.ModTime().Unix(),
	}, nil
}
