package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	AppName = "todo-app"
	Version = "1.0.0"

	defaultDataFile = ".todo_list.json"
)

type Config struct {
	AppName string
	Version string

	DataFile    string
	Port        int
	CORSOrigins []string
}

func Load() *Config {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080 // fallback
	}

	dataFile := os.Getenv("TODO_DATA_FILE")
	if dataFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataFile = filepath.Join(home, defaultDataFile)
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		AppName: AppName,
		Version: Version,

		DataFile:    dataFile,
		Port:        port,
		CORSOrigins: origins,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Validate checks that the app metadata is complete and the version is strict
// MAJOR.MINOR.PATCH semver.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("missing required configuration key: app_name")
	}
	if !semverPattern.MatchString(c.Version) {
		return fmt.Errorf("invalid version format: %s (expected semver, e.g. 1.2.3)", c.Version)
	}
	return nil
}

// IsValidSemver reports whether a string is strict MAJOR.MINOR.PATCH semver.
func IsValidSemver(version string) bool {
	return semverPattern.MatchString(version)
}
