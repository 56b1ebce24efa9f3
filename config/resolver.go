package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kbukum/convokit/errors"
)

// FileSystem is the file access the resolver and loader need (swappable in tests).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

// OSFileSystem implements FileSystem on the real file system.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (OSFileSystem) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// ResolvedFiles are the config and env files chosen for a load. Either may be empty.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver picks the config and env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles returns the files to load. An explicit config file, or one
// named by the {SERVICE}_CONFIG environment variable, must exist; otherwise
// the first existing candidate wins. An explicit env file is passed through.
func (r *Resolver) ResolveFiles(serviceName string, lc LoaderConfig) (ResolvedFiles, error) {
	files := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}

	if files.ConfigFile == "" {
		files.ConfigFile = os.Getenv(configEnvVar(serviceName))
	}
	if files.ConfigFile != "" {
		if !r.FileSystem.Exists(files.ConfigFile) {
			return ResolvedFiles{}, errors.NotFound("config file", files.ConfigFile)
		}
	} else {
		files.ConfigFile = r.first(r.configCandidates(serviceName))
	}

	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(serviceName))
	}
	return files, nil
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists the config search locations in priority order.
func (r *Resolver) configCandidates(serviceName string) []string {
	var paths []string
	for _, base := range []string{serviceName, "config"} {
		for _, ext := range []string{".yml", ".yaml"} {
			paths = append(paths, base+ext)
		}
	}
	paths = append(paths, filepath.Join("cmd", serviceName, "config.yml"))
	if dir, err := r.FileSystem.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, serviceName, "config.yml"))
	}
	return paths
}

func envCandidates(serviceName string) []string {
	return []string{
		".env." + serviceName,
		".env",
		filepath.Join("cmd", serviceName, ".env"),
	}
}

// configEnvVar is the variable naming an explicit config file, e.g. CONVOKIT_CONFIG.
func configEnvVar(serviceName string) string {
	return envPrefix(serviceName) + "CONFIG"
}

func envPrefix(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}
