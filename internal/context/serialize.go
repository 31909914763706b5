package context

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SParksLz/rez/internal/core/domain"
	"go.trai.ch/zerr"
)

// Serialization version of the persisted context format. Bump the minor when
// data is added that earlier versions can still read; bump the major when
// backwards compatibility breaks.
const (
	SerializeMajor = 1
	SerializeMinor = 0
)

// Minimum readable stored version within the current major.
const (
	minReadableMajor = 1
	minReadableMinor = 0
)

// persistedContext is the on-disk schema of a .rxt file. Unknown fields in
// newer-minor blobs are ignored; absent fields default to zero values, which
// keeps minor additions forward-compatible.
type persistedContext struct {
	SerializeMajor int `json:"serialize_major"`
	SerializeMinor int `json:"serialize_minor"`

	Requested   []string             `json:"requested"`
	Mode        domain.ResolveMode   `json:"mode"`
	Timestamp   int64                `json:"timestamp"`
	Flags       domain.ResolveFlags  `json:"flags"`
	SearchPaths []string             `json:"search_paths,omitempty"`
	Implicit    []string             `json:"implicit_packages,omitempty"`
	LocalPath   string               `json:"local_packages_path,omitempty"`
	Provenance  domain.Provenance    `json:"provenance"`
	Result      *domain.ResolveResult `json:"result"`
}

// Save serializes the full context, resolve result included, to a versioned
// blob. The write goes to a temporary file in the target directory first and
// is renamed into place, so a partial write can never be mistaken for a valid
// context file.
func (rc *ResolvedContext) Save(path string) error {
	blob := persistedContext{
		SerializeMajor: rc.major,
		SerializeMinor: rc.minor,
		Requested:      rc.requested,
		Mode:           rc.mode,
		Timestamp:      rc.timestamp,
		Flags:          rc.flags,
		SearchPaths:    rc.searchPaths,
		Implicit:       rc.implicit,
		LocalPath:      rc.localPath,
		Provenance:     rc.provenance,
		Result:         rc.result,
	}

	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal context")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rxt-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary context file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write context file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close context file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to move context file into place")
	}
	return nil
}

// Load reconstructs a context from a persisted blob. The reconstructed
// instance shares no mutable state with the original. Stored versions below
// the minimum readable version fail with domain.ErrVersionTooOld; stored
// major versions above the current major fail with domain.ErrVersionTooNew.
// A newer minor within the current major loads fine.
func Load(path string) (*ResolvedContext, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read context file")
	}

	var blob persistedContext
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, zerr.Wrap(err, "failed to parse context file")
	}

	stored := fmt.Sprintf("%d.%d", blob.SerializeMajor, blob.SerializeMinor)
	if blob.SerializeMajor < minReadableMajor ||
		(blob.SerializeMajor == minReadableMajor && blob.SerializeMinor < minReadableMinor) {
		werr := zerr.With(domain.ErrVersionTooOld, "stored_version", stored)
		return nil, zerr.With(werr, "min_version", fmt.Sprintf("%d.%d", minReadableMajor, minReadableMinor))
	}
	if blob.SerializeMajor > SerializeMajor {
		werr := zerr.With(domain.ErrVersionTooNew, "stored_version", stored)
		return nil, zerr.With(werr, "max_major", SerializeMajor)
	}
	if blob.Result == nil {
		return nil, zerr.With(zerr.New("context file has no resolve result"), "path", path)
	}

	return &ResolvedContext{
		major:       blob.SerializeMajor,
		minor:       blob.SerializeMinor,
		requested:   blob.Requested,
		mode:        blob.Mode,
		timestamp:   blob.Timestamp,
		flags:       blob.Flags,
		searchPaths: blob.SearchPaths,
		implicit:    blob.Implicit,
		localPath:   blob.LocalPath,
		provenance:  blob.Provenance,
		result:      blob.Result,
	}, nil
}
