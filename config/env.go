package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvApiKey       = "TICKETMASTER_API_KEY"
	EnvIsAtHome     = "APIFY_IS_AT_HOME"
	EnvUserIsPaying = "APIFY_USER_IS_PAYING"

	inputKeyApiKey = "apiKey"
	defaultEnvFile = ".env"
)

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{defaultEnvFile}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv fills a missing or blank apiKey from TICKETMASTER_API_KEY.
func ApplyEnv(raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}
	key, _ := raw[inputKeyApiKey].(string)
	if strings.TrimSpace(key) != "" {
		return raw
	}
	if env := os.Getenv(EnvApiKey); env != "" {
		raw[inputKeyApiKey] = env
	}
	return raw
}

// FreeTier reports whether the run is hosted on the free plan.
func FreeTier() bool {
	return envTrue(EnvIsAtHome) && !envTrue(EnvUserIsPaying)
}

func envTrue(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true":
		return true
	}
	return false
}
