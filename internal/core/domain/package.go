// Package domain holds the core value objects of rez: resolved packages,
// resolve results, package commands and the error taxonomy.
package domain

import "fmt"

// ResolvedPackage is one concrete package version selected by a resolve,
// with its filesystem locations and metadata.
type ResolvedPackage struct {
	// Name is the package name, unique within one ResolveResult.
	Name string `json:"name"`

	// Version is the resolved version.
	Version Version `json:"version"`

	// Root is the versioned payload directory of the package.
	Root string `json:"root"`

	// Base is the package's base directory (the parent holding all versions).
	Base string `json:"base"`

	// MetaFile is the path of the metadata file the package was loaded from.
	// Used for error attribution when the package's commands fail.
	MetaFile string `json:"metafile"`

	// Metadata is the package's arbitrary key/value metadata, including the
	// optional "commands" entry.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ShortName returns the display form "name-version".
func (p ResolvedPackage) ShortName() string {
	if p.Version.String() == "" {
		return p.Name
	}
	return fmt.Sprintf("%s-%s", p.Name, p.Version)
}

// MetaEntry returns the metadata value for key. Absent keys report ok=false
// rather than failing; callers supply their own default.
func (p ResolvedPackage) MetaEntry(key string) (any, bool) {
	if p.Metadata == nil {
		return nil, false
	}
	v, ok := p.Metadata[key]
	return v, ok
}

// MetaString returns the metadata value for key as a string, or "" when the
// key is absent or not a string.
func (p ResolvedPackage) MetaString(key string) string {
	v, ok := p.MetaEntry(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
