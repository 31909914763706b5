package context_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	rezcontext "github.com/SParksLz/rez/internal/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// summaryFixture is a persisted context with pinned provenance so summaries
// are reproducible.
func summaryFixture(t *testing.T, pkgRoot, localPath string) *rezcontext.ResolvedContext {
	t.Helper()

	blob := map[string]any{
		"serialize_major": rezcontext.SerializeMajor,
		"serialize_minor": rezcontext.SerializeMinor,
		"requested":       []string{"maya-2024", "houdini"},
		"mode":            "latest",
		"timestamp":       0,
		"flags": map[string]any{
			"build_requires":        false,
			"assume_dt":             false,
			"caching":               true,
			"add_implicit_packages": true,
		},
		"search_paths":        []string{"/sw/packages", "/home/ana/packages"},
		"implicit_packages":   []string{"platform-linux"},
		"local_packages_path": localPath,
		"provenance": map[string]any{
			"user":        "ana",
			"host":        "ws042",
			"platform":    "linux",
			"arch":        "amd64",
			"os":          "linux",
			"shell":       "bash",
			"rez_version": "1.0.0",
			"rez_path":    "/opt/rez",
			"created":     1700000000,
		},
		"result": map[string]any{
			"raw_request": []string{"maya-2024", "houdini"},
			"request":     []string{"platform-linux", "maya-2024", "houdini"},
			"packages": []map[string]any{
				{
					"name":    "maya",
					"version": "2024.1",
					"root":    pkgRoot,
					"base":    filepath.Dir(pkgRoot),
				},
			},
			"mode":         "latest",
			"request_time": 1700000000,
		},
	}

	data, err := json.Marshal(blob)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "context.rxt")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	rc, err := rezcontext.Load(path)
	require.NoError(t, err)
	return rc
}

func TestSummarize(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	root := filepath.Join(t.TempDir(), "maya", "2024.1")
	require.NoError(t, os.MkdirAll(root, 0o750))
	rc := summaryFixture(t, root, "")

	var buf bytes.Buffer
	require.NoError(t, rc.Summarize(&buf, false))
	out := buf.String()

	created := time.Unix(1700000000, 0).Format("Mon Jan 02 15:04:05 2006")
	assert.Contains(t, out, fmt.Sprintf("resolved by ana@ws042, on %s, using Rez v1.0.0", created))
	assert.Contains(t, out, "implicit packages:\nplatform-linux\n")
	assert.Contains(t, out, "requested packages:\nmaya-2024\nhoudini\n")
	assert.Contains(t, out, "resolved packages:\n")
	assert.Contains(t, out, "maya-2024.1  "+root)

	// Search paths only show up in verbose mode.
	assert.NotContains(t, out, "search paths:")
}

func TestSummarize_Verbose(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	root := filepath.Join(t.TempDir(), "maya", "2024.1")
	require.NoError(t, os.MkdirAll(root, 0o750))
	rc := summaryFixture(t, root, "")

	var buf bytes.Buffer
	require.NoError(t, rc.Summarize(&buf, true))
	out := buf.String()

	assert.Contains(t, out, "search paths:\n/sw/packages\n/home/ana/packages\n")
	assert.Contains(t, out, "(1700000000)")
}

func TestSummarize_MissingRootMarked(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	rc := summaryFixture(t, filepath.Join(t.TempDir(), "gone", "1.0"), "")

	var buf bytes.Buffer
	require.NoError(t, rc.Summarize(&buf, false))
	assert.Contains(t, buf.String(), "NOT FOUND")
}

func TestSummarize_LocalPackageMarked(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	local := t.TempDir()
	root := filepath.Join(local, "maya", "2024.1")
	require.NoError(t, os.MkdirAll(root, 0o750))
	rc := summaryFixture(t, root, local)

	var buf bytes.Buffer
	require.NoError(t, rc.Summarize(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "maya-2024.1  "+root+"  local")
	assert.NotContains(t, out, "NOT FOUND")
}
