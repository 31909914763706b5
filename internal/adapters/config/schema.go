package config

// Settings represents the structure of the rezconfig.yaml file.
type Settings struct {
	// PackagesPath are the package repositories searched during a resolve,
	// in order.
	PackagesPath []string `yaml:"packages_path"`

	// LocalPackagesPath holds locally developed packages; resolved packages
	// under it are marked "local" in summaries.
	LocalPackagesPath string `yaml:"local_packages_path"`

	// ImplicitPackages are added to every request unless suppressed.
	ImplicitPackages []string `yaml:"implicit_packages"`

	// WarnOldCommands enables the one-time warning when a package still uses
	// legacy-list commands.
	WarnOldCommands *bool `yaml:"warn_old_commands"`

	// CacheDir is where resolve results are cached when caching is enabled.
	CacheDir string `yaml:"cache_dir"`
}

// WarnOldCommandsEnabled reports the warning flag, defaulting to true.
func (s *Settings) WarnOldCommandsEnabled() bool {
	if s.WarnOldCommands == nil {
		return true
	}
	return *s.WarnOldCommands
}
