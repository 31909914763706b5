package domain

import "go.trai.ch/zerr"

var (
	// ErrResolutionFailed is returned when the resolver cannot satisfy a request.
	// It is propagated as-is; this core never retries a resolve.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrVersionTooOld is returned when loading a persisted context whose
	// serialization version is below the minimum readable version.
	ErrVersionTooOld = zerr.New("context version too old")

	// ErrVersionTooNew is returned when loading a persisted context whose major
	// serialization version exceeds the current major version.
	ErrVersionTooNew = zerr.New("context version too new")

	// ErrPackageNotFound is returned by validation when a resolved package's
	// root path no longer exists on the current filesystem.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrCommandExecution is returned when evaluating a package's environment
	// commands fails. It carries the originating metadata file for attribution.
	ErrCommandExecution = zerr.New("package commands failed")
)
