package packages_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SParksLz/rez/internal/adapters/packages"
	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeVersion lays out <root>/<name>/<version>/package.yaml.
func writeVersion(t *testing.T, root, name, version, metadata string) {
	t.Helper()
	dir := filepath.Join(root, name, version)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, packages.MetadataFile), []byte(metadata), 0o600))
}

func repoFixture(t *testing.T) (string, *packages.Resolver) {
	t.Helper()
	root := t.TempDir()
	writeVersion(t, root, "maya", "2023.3", "description: maya\n")
	writeVersion(t, root, "maya", "2024.1", "description: maya\ncommands: |\n  setenv(\"MAYA_LOCATION\", \"{root}\")\n")
	writeVersion(t, root, "maya", "2024.2", "description: maya\n")
	writeVersion(t, root, "houdini", "20.0", "description: houdini\n")

	repo := packages.NewRepository([]string{root})
	return root, packages.NewResolver(repo, nil)
}

func request(pkgs ...string) ports.ResolveRequest {
	return ports.ResolveRequest{
		Packages:    pkgs,
		RawPackages: pkgs,
		Mode:        domain.ModeLatest,
		Flags:       domain.DefaultResolveFlags(),
	}
}

func TestResolver_LatestWins(t *testing.T) {
	root, resolver := repoFixture(t)

	result, err := resolver.Resolve(t.Context(), request("maya"))
	require.NoError(t, err)
	require.Len(t, result.Packages, 1)

	pkg := result.Packages[0]
	assert.Equal(t, "maya-2024.2", pkg.ShortName())
	assert.Equal(t, filepath.Join(root, "maya", "2024.2"), pkg.Root)
	assert.Equal(t, filepath.Join(root, "maya"), pkg.Base)
}

func TestResolver_EarliestMode(t *testing.T) {
	_, resolver := repoFixture(t)

	req := request("maya")
	req.Mode = domain.ModeEarliest
	result, err := resolver.Resolve(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "maya-2023.3", result.Packages[0].ShortName())
}

func TestResolver_VersionPrefix(t *testing.T) {
	_, resolver := repoFixture(t)

	result, err := resolver.Resolve(t.Context(), request("maya-2024.1"))
	require.NoError(t, err)
	assert.Equal(t, "maya-2024.1", result.Packages[0].ShortName())

	result, err = resolver.Resolve(t.Context(), request("maya-2024"))
	require.NoError(t, err)
	assert.Equal(t, "maya-2024.2", result.Packages[0].ShortName())
}

func TestResolver_MetadataLoaded(t *testing.T) {
	_, resolver := repoFixture(t)

	result, err := resolver.Resolve(t.Context(), request("maya-2024.1"))
	require.NoError(t, err)

	cmds, ok, err := domain.CommandsFromMetadata(result.Packages[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.CommandsSource, cmds.Kind())
}

func TestResolver_RequestOrderPreserved(t *testing.T) {
	_, resolver := repoFixture(t)

	result, err := resolver.Resolve(t.Context(), request("houdini", "maya"))
	require.NoError(t, err)
	require.Len(t, result.Packages, 2)
	assert.Equal(t, "houdini", result.Packages[0].Name)
	assert.Equal(t, "maya", result.Packages[1].Name)
	assert.NotEmpty(t, result.DotGraph)
}

func TestResolver_UnknownPackage(t *testing.T) {
	_, resolver := repoFixture(t)

	_, err := resolver.Resolve(t.Context(), request("nuke"))
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestResolver_UnmatchedConstraint(t *testing.T) {
	_, resolver := repoFixture(t)

	_, err := resolver.Resolve(t.Context(), request("maya-2025"))
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestResolver_TimestampCutoff(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "maya", "2024.1", "description: maya\n")
	writeVersion(t, root, "maya", "2024.2", "description: maya\n")

	old := time.Now().Add(-48 * time.Hour)
	oldMeta := filepath.Join(root, "maya", "2024.1", packages.MetadataFile)
	require.NoError(t, os.Chtimes(oldMeta, old, old))

	resolver := packages.NewResolver(packages.NewRepository([]string{root}), nil)

	req := request("maya")
	req.Timestamp = time.Now().Add(-24 * time.Hour).Unix()
	result, err := resolver.Resolve(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "maya-2024.1", result.Packages[0].ShortName())
	assert.Equal(t, 1, result.FailedAttempts)
}

func TestResolver_EarlierSearchPathWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeVersion(t, first, "maya", "2024.1", "description: from first\n")
	writeVersion(t, second, "maya", "2024.1", "description: from second\n")

	resolver := packages.NewResolver(packages.NewRepository([]string{first, second}), nil)

	result, err := resolver.Resolve(t.Context(), request("maya"))
	require.NoError(t, err)
	assert.Equal(t, "from first", result.Packages[0].MetaString("description"))
}

func TestResolver_CacheRoundTrip(t *testing.T) {
	root, _ := repoFixture(t)
	cache := packages.NewResolveCache(filepath.Join(t.TempDir(), "resolves"))
	resolver := packages.NewResolver(packages.NewRepository([]string{root}), cache)

	req := request("maya")
	first, err := resolver.Resolve(t.Context(), req)
	require.NoError(t, err)

	cached, ok := cache.Get(req)
	require.True(t, ok)
	assert.Equal(t, first.ShortNames(), cached.ShortNames())

	// Repeat resolve served from cache matches.
	second, err := resolver.Resolve(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ShortNames(), second.ShortNames())
}

func TestResolveCache_KeyDiscriminates(t *testing.T) {
	cache := packages.NewResolveCache(t.TempDir())

	base := request("maya")
	other := request("maya")
	other.Mode = domain.ModeEarliest

	assert.NotEqual(t, cache.Key(base), cache.Key(other))
	assert.Equal(t, cache.Key(base), cache.Key(request("maya")))
}
