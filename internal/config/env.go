package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadEnvFile reads KEY=VALUE lines from path. GITOBJ_* keys become process
// environment variables unless already set there, so the overrides in
// applyEnv see them. GIT_* keys are added to the environment of every git
// process unless git.env already sets them. A missing file is not an error.
func (c *Config) loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(key, "GITOBJ_"):
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, value)
			}
		case strings.HasPrefix(key, "GIT_"):
			if !c.hasGitEnv(key) {
				c.Git.Env = append(c.Git.Env, key+"="+value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) hasGitEnv(key string) bool {
	for _, kv := range c.Git.Env {
		if k, _, _ := strings.Cut(kv, "="); k == key {
			return true
		}
	}
	return false
}

// parseEnvLine extracts KEY=VALUE from a line, dropping an optional
// "export " prefix and one pair of matching quotes around the value.
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
