package commands_test

import (
	"bytes"
	"testing"

	"github.com/SParksLz/rez/cmd/rez/commands"
	"github.com/SParksLz/rez/internal/adapters/config"
	"github.com/SParksLz/rez/internal/app"
	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCLI(t *testing.T) (*commands.CLI, *mocks.MockResolver) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockResolver := mocks.NewMockResolver(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	warn := false
	settings := &config.Settings{
		PackagesPath:    []string{"/sw/packages"},
		WarnOldCommands: &warn,
	}
	return commands.New(app.New(mockResolver, settings, mockLogger)), mockResolver
}

func TestVersionCommand(t *testing.T) {
	cli, _ := newCLI(t)

	var buf bytes.Buffer
	cli.SetOut(&buf)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(t.Context()))

	assert.Contains(t, buf.String(), "rez version")
}

func TestEnvCommand_PrintEnv(t *testing.T) {
	cli, mockResolver := newCLI(t)

	mockResolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(&domain.ResolveResult{
		RawRequest: []string{"maya"},
		Request:    []string{"maya"},
		Packages: []domain.ResolvedPackage{{
			Name:     "maya",
			Version:  domain.ParseVersion("2024.1"),
			Root:     "/sw/maya/2024.1",
			Metadata: map[string]any{"commands": `setenv("MAYA_LOCATION", "{root}")`},
		}},
		Mode: domain.ModeLatest,
	}, nil)

	var buf bytes.Buffer
	cli.SetOut(&buf)
	cli.SetArgs([]string{"env", "maya", "--print-env"})
	require.NoError(t, cli.Execute(t.Context()))

	out := buf.String()
	assert.Contains(t, out, "MAYA_LOCATION=/sw/maya/2024.1\n")
	assert.Contains(t, out, "REZ_RESOLVE=maya-2024.1\n")
	assert.Equal(t, 0, cli.ExitCode())
}

func TestEnvCommand_NoArgsShowsHelp(t *testing.T) {
	cli, _ := newCLI(t)

	var buf bytes.Buffer
	cli.SetOut(&buf)
	cli.SetArgs([]string{"env"})
	require.NoError(t, cli.Execute(t.Context()))
	assert.Contains(t, buf.String(), "Usage:")
}

func TestEnvCommand_RejectsUnknownMode(t *testing.T) {
	cli, _ := newCLI(t)

	cli.SetArgs([]string{"env", "maya", "--mode", "newest"})
	require.Error(t, cli.Execute(t.Context()))
}
