package rex_test

import (
	"strings"
	"testing"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports/mocks"
	"github.com/SParksLz/rez/internal/rex"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertLegacyLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "plain export",
			line: "export MAYA_PLUGINS=!ROOT!/plugins",
			want: `setenv("MAYA_PLUGINS", "{root}/plugins")`,
		},
		{
			name: "append via self reference",
			line: "export PATH=$PATH:!ROOT!/bin",
			want: `appendenv("PATH", "{root}/bin")`,
		},
		{
			name: "prepend via self reference",
			line: "export PATH=!ROOT!/bin:$PATH",
			want: `prependenv("PATH", "{root}/bin")`,
		},
		{
			name: "braced self reference",
			line: "export LD_LIBRARY_PATH=${LD_LIBRARY_PATH}:!BASE!/lib",
			want: `appendenv("LD_LIBRARY_PATH", "{base}/lib")`,
		},
		{
			name: "quoted value",
			line: `export GREETING='hello world'`,
			want: `setenv("GREETING", "hello world")`,
		},
		{
			name: "alias",
			line: "alias mayapy=maya -py",
			want: `alias("mayapy", "maya -py")`,
		},
		{
			name: "comment",
			line: "#  configure maya",
			want: `comment("configure maya")`,
		},
		{
			name: "version tokens",
			line: "export MAYA_VER=!VERSION!-!MAJOR_VERSION!.!MINOR_VERSION!",
			want: `setenv("MAYA_VER", "{version}-{version.major}.{version.minor}")`,
		},
		{
			name: "user token",
			line: "export OWNER=!USER!",
			want: `setenv("OWNER", "{user}")`,
		},
		{
			name: "unrecognized line preserved as comment",
			line: "ulimit -n 4096",
			want: `comment("ulimit -n 4096")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rex.ConvertLegacyLines([]string{tt.line})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertLegacyLines_NoTokensSurvive(t *testing.T) {
	got := rex.ConvertLegacyLines([]string{
		"export PATH=$PATH:!ROOT!/bin",
		"export APP_ID=!VERSION!-!USER!",
	})

	assert.NotContains(t, got, "!")
	lines := strings.Split(got, "\n")
	assert.Equal(t, `appendenv("PATH", "{root}/bin")`, lines[0])
	assert.Equal(t, `setenv("APP_ID", "{version}-{user}")`, lines[1])
}

func TestNormalize_LegacyWarnsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("maya-2024.1 is using old-style commands").Times(1)

	reporter := rex.NewWarningReporter(mockLogger)
	pkg := domain.ResolvedPackage{Name: "maya", Version: domain.ParseVersion("2024.1"), MetaFile: "package.yaml"}
	legacy := domain.LegacyListCommands([]string{"export A=1"})

	first := rex.Normalize(legacy, pkg, reporter)
	assert.Equal(t, domain.CommandsSource, first.Kind())

	// A second legacy package stays silent.
	rex.Normalize(legacy, pkg, reporter)
}

func TestNormalize_ResetRearmsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(2)

	reporter := rex.NewWarningReporter(mockLogger)
	pkg := domain.ResolvedPackage{Name: "maya", Version: domain.ParseVersion("2024.1")}
	legacy := domain.LegacyListCommands([]string{"export A=1"})

	rex.Normalize(legacy, pkg, reporter)
	reporter.Reset()
	rex.Normalize(legacy, pkg, reporter)
}

func TestNormalize_ModernFormsPassThrough(t *testing.T) {
	pkg := domain.ResolvedPackage{Name: "maya", Version: domain.ParseVersion("2024.1")}

	src := domain.SourceCommands(`setenv("A", "1")`, "package.yaml")
	assert.Equal(t, src, rex.Normalize(src, pkg, nil))

	callable := domain.CallableCommands(func(domain.CommandEnv) error { return nil })
	assert.Equal(t, domain.CommandsCallable, rex.Normalize(callable, pkg, nil).Kind())
}
