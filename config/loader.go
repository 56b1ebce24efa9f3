package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/util"
)

// LoaderConfig holds the file system and optional explicit file paths.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem replaces the real file system.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. The file must exist.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path. A missing file is skipped.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig resolves the config and env files for serviceName, layers the
// environment over the YAML file and unmarshals the result into cfg.
//
// Every environment variable is bound under its nested key variants, so
// DETECT_GAP_LOWER_BOUND sets detect.gap.lower_bound. Variables carrying the
// service prefix (CONVOKIT_DETECT_GAP_LOWER_BOUND) take precedence.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	files, err := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)
	if err != nil {
		return err
	}

	v := viper.New()
	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidFormat("config file", "YAML").WithCause(err).WithDetail("file", files.ConfigFile)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("failed to load .env file", map[string]interface{}{
				"file":  files.EnvFile,
				"error": err.Error(),
			})
		}
	}
	bindEnv(v, serviceName, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return errors.InvalidFormat("config", serviceName+" configuration").WithCause(err)
	}

	logger.Debug("configuration loaded", map[string]interface{}{
		"config_file": files.ConfigFile,
		"env_file":    files.EnvFile,
	})
	return nil
}

// bindEnv sets every KEY=value pair on v under each nested key variant.
// Prefixed variables are applied last so they override unprefixed ones.
func bindEnv(v *viper.Viper, serviceName string, environ []string) {
	prefix := envPrefix(serviceName)
	var prefixed [][2]string
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" || key == configEnvVar(serviceName) {
			continue
		}
		if rest, found := strings.CutPrefix(key, prefix); found {
			prefixed = append(prefixed, [2]string{rest, value})
			continue
		}
		setVariants(v, key, value)
	}
	for _, kv := range prefixed {
		setVariants(v, kv[0], kv[1])
	}
}

func setVariants(v *viper.Viper, key, value string) {
	for _, variant := range envKeyVariants(key) {
		v.Set(variant, value)
	}
}

// envKeyVariants maps an UPPER_SNAKE variable to the dotted keys it may mean:
//
//	DETECT_GAP_LOWER_BOUND -> detect_gap_lower_bound, detect.gap.lower.bound,
//	                          detect.gap_lower_bound, detect.gap.lower_bound, ...
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return util.Unique(variants)
}
