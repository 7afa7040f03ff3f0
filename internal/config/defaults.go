package config

const (
	defaultConfigPath     = "~/.config/quizsorter/config.toml"
	projectConfigName     = "quizsorter.toml"
	defaultDataDir        = "~/.local/share/quizsorter"
	defaultMasterDirName  = "masters"
	defaultHistoryDBName  = "history.db"
	defaultLockDirName    = "locks"
	defaultFuzzyThreshold = 80
	defaultCurveEnabled   = true
	defaultCurveCap       = 9
	defaultS3Region       = "us-east-1"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Storage backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
		},
		Curve: Curve{
			Enabled: defaultCurveEnabled,
			Cap:     defaultCurveCap,
		},
		Storage: Storage{
			Backend:    BackendFS,
			KeepBackup: true,
			S3: S3{
				Region: defaultS3Region,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
