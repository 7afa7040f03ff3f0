package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces environment overrides, e.g. QUIZSORTER_DATA_DIR.
const EnvPrefix = "QUIZSORTER"

// envOverrides mirrors the settings that may be overridden from the
// environment. Unset variables leave the pointer nil so file values survive.
type envOverrides struct {
	DataDir        *string `envconfig:"DATA_DIR"`
	MasterDir      *string `envconfig:"MASTER_DIR"`
	HistoryDB      *string `envconfig:"HISTORY_DB"`
	LockDir        *string `envconfig:"LOCK_DIR"`
	FuzzyThreshold *int    `envconfig:"FUZZY_THRESHOLD"`
	CurveEnabled   *bool   `envconfig:"CURVE_ENABLED"`
	CurveCap       *int    `envconfig:"CURVE_CAP"`
	StorageBackend *string `envconfig:"STORAGE_BACKEND"`
	KeepBackup     *bool   `envconfig:"KEEP_BACKUP"`
	S3Bucket       *string `envconfig:"S3_BUCKET"`
	S3Region       *string `envconfig:"S3_REGION"`
	S3Endpoint     *string `envconfig:"S3_ENDPOINT"`
	S3Prefix       *string `envconfig:"S3_PREFIX"`
	S3PathStyle    *bool   `envconfig:"S3_PATH_STYLE"`
	LogFormat      *string `envconfig:"LOG_FORMAT"`
	LogLevel       *string `envconfig:"LOG_LEVEL"`
	LogFile        *string `envconfig:"LOG_FILE"`
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	setString(&c.Paths.DataDir, env.DataDir)
	setString(&c.Paths.MasterDir, env.MasterDir)
	setString(&c.Paths.HistoryDB, env.HistoryDB)
	setString(&c.Paths.LockDir, env.LockDir)
	setInt(&c.Matching.FuzzyThreshold, env.FuzzyThreshold)
	setBool(&c.Curve.Enabled, env.CurveEnabled)
	setInt(&c.Curve.Cap, env.CurveCap)
	setString(&c.Storage.Backend, env.StorageBackend)
	setBool(&c.Storage.KeepBackup, env.KeepBackup)
	setString(&c.Storage.S3.Bucket, env.S3Bucket)
	setString(&c.Storage.S3.Region, env.S3Region)
	setString(&c.Storage.S3.Endpoint, env.S3Endpoint)
	setString(&c.Storage.S3.Prefix, env.S3Prefix)
	setBool(&c.Storage.S3.PathStyle, env.S3PathStyle)
	setString(&c.Logging.Format, env.LogFormat)
	setString(&c.Logging.Level, env.LogLevel)
	setString(&c.Logging.File, env.LogFile)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
