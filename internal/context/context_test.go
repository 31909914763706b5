package context_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	rezcontext "github.com/SParksLz/rez/internal/context"
	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/SParksLz/rez/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func fixedResult(pkgs ...domain.ResolvedPackage) *domain.ResolveResult {
	return &domain.ResolveResult{
		RawRequest:  []string{"maya"},
		Request:     []string{"platform-linux", "maya"},
		Packages:    pkgs,
		Mode:        domain.ModeLatest,
		RequestTime: 1700000000,
	}
}

func TestNew_MergesImplicitPackagesFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResolver := mocks.NewMockResolver(ctrl)
	mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.ResolveRequest) (*domain.ResolveResult, error) {
			assert.Equal(t, []string{"platform-linux", "maya"}, req.Packages)
			assert.Equal(t, []string{"maya"}, req.RawPackages)
			return fixedResult(), nil
		})

	flags := domain.DefaultResolveFlags()
	rc, err := rezcontext.New(t.Context(), mockResolver, rezcontext.Options{
		Packages:         []string{"maya"},
		Flags:            flags,
		ImplicitPackages: []string{"platform-linux"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"maya"}, rc.RequestedPackages())
	assert.Equal(t, []string{"platform-linux"}, rc.AddedImplicitPackages())
}

func TestNew_NoImplicitWhenSuppressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResolver := mocks.NewMockResolver(ctrl)
	mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.ResolveRequest) (*domain.ResolveResult, error) {
			assert.Equal(t, []string{"maya"}, req.Packages)
			return fixedResult(), nil
		})

	flags := domain.DefaultResolveFlags()
	flags.AddImplicitPackages = false
	rc, err := rezcontext.New(t.Context(), mockResolver, rezcontext.Options{
		Packages:         []string{"maya"},
		Flags:            flags,
		ImplicitPackages: []string{"platform-linux"},
	})
	require.NoError(t, err)
	assert.Empty(t, rc.AddedImplicitPackages())
}

func TestNew_ResolverErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResolver := mocks.NewMockResolver(ctrl)
	resolveErr := zerr.With(domain.ErrResolutionFailed, "package", "maya")
	mockResolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, resolveErr)

	_, err := rezcontext.New(t.Context(), mockResolver, rezcontext.Options{
		Packages: []string{"maya"},
		Flags:    domain.DefaultResolveFlags(),
	})
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "maya", "2024.1")
	require.NoError(t, os.MkdirAll(existing, 0o750))

	rc := newContextWith(t, fixedResult(domain.ResolvedPackage{
		Name: "maya", Version: domain.ParseVersion("2024.1"), Root: existing,
	}))
	require.NoError(t, rc.Validate())

	rc = newContextWith(t, fixedResult(domain.ResolvedPackage{
		Name: "maya", Version: domain.ParseVersion("2024.1"),
		Root: filepath.Join(root, "gone"),
	}))
	assert.ErrorIs(t, rc.Validate(), domain.ErrPackageNotFound)
}

// newContextWith builds a context around a canned resolve result.
func newContextWith(t *testing.T, result *domain.ResolveResult) *rezcontext.ResolvedContext {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockResolver := mocks.NewMockResolver(ctrl)
	mockResolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(result, nil)

	rc, err := rezcontext.New(t.Context(), mockResolver, rezcontext.Options{
		Packages: result.RawRequest,
		Flags:    domain.DefaultResolveFlags(),
	})
	require.NoError(t, err)
	return rc
}
