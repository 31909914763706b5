package context_test

import (
	"os"
	"strings"
	"testing"

	"github.com/SParksLz/rez/internal/adapters/shell"
	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnviron_DoesNotTouchProcess(t *testing.T) {
	pkg := domain.ResolvedPackage{
		Name:     "maya",
		Version:  domain.ParseVersion("2024.1"),
		Root:     "/sw/maya/2024.1",
		Metadata: map[string]any{"commands": `setenv("MAYA_LOCATION", "{root}")`},
	}
	rc := newContextWith(t, fixedResult(pkg))

	env, err := rc.Environ(map[string]string{"HOME": "/home/ana"})
	require.NoError(t, err)

	assert.Equal(t, "/sw/maya/2024.1", env["MAYA_LOCATION"])
	assert.Equal(t, "/home/ana", env["HOME"])
	assert.Equal(t, "maya-2024.1", env["REZ_RESOLVE"])

	// The live process never sees the interpretation.
	assert.Empty(t, os.Getenv("MAYA_LOCATION"))
}

func TestShellCode_Bash(t *testing.T) {
	pkg := domain.ResolvedPackage{
		Name:    "maya",
		Version: domain.ParseVersion("2024.1"),
		Root:    "/sw/maya/2024.1",
		Metadata: map[string]any{
			"commands": `prependenv("PATH", "{root}/bin")` + "\n" + `alias("mayapy", "{root}/bin/mayapy")`,
		},
	}
	rc := newContextWith(t, fixedResult(pkg))

	code, err := rc.ShellCode(shell.NewBash(), map[string]string{})
	require.NoError(t, err)

	assert.Contains(t, code, `export REZ_MAYA_ROOT='/sw/maya/2024.1'`)
	assert.Contains(t, code, `export PATH='/sw/maya/2024.1/bin'"${PATH:+:}${PATH}"`)
	assert.Contains(t, code, `alias mayapy='/sw/maya/2024.1/bin/mayapy'`)
	assert.Contains(t, code, "# Commands from package maya-2024.1")
	assert.True(t, strings.HasSuffix(code, "\n"))
}

func TestExecuteCommand_RejectsEmpty(t *testing.T) {
	rc := newContextWith(t, fixedResult())
	_, err := rc.ExecuteCommand(t.Context(), nil, map[string]string{})
	require.Error(t, err)
}
