// Package config loads the gateway's bootstrap.* settings (spec §6)
// from environment variables, with defaults matching the spec, and a
// small overlay of operator-configured authorities.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the gateway's runtime settings.
type Config struct {
	BootstrapBaseURI        string
	BootstrapInterval       time.Duration
	BootstrapRequestTimeout time.Duration
	SupportedVersions       map[string]bool
}

const (
	envBaseURI        = "RDAP_BOOTSTRAP_BASE_URI"
	envInterval       = "RDAP_BOOTSTRAP_INTERVAL_SECONDS"
	envRequestTimeout = "RDAP_BOOTSTRAP_REQUEST_TIMEOUT_SECONDS"
	envVersions       = "RDAP_BOOTSTRAP_SUPPORTED_VERSIONS"

	defaultBaseURI          = "https://data.iana.org/rdap/"
	defaultIntervalSeconds  = 86400
	defaultTimeoutSeconds   = 30
	defaultSupportedVersion = "1.0"
)

// FromEnv loads Config from environment variables, falling back to
// spec §6's defaults for anything unset.
func FromEnv() Config {
	c := Config{
		BootstrapBaseURI:        defaultBaseURI,
		BootstrapInterval:       time.Duration(defaultIntervalSeconds) * time.Second,
		BootstrapRequestTimeout: time.Duration(defaultTimeoutSeconds) * time.Second,
		SupportedVersions:       map[string]bool{defaultSupportedVersion: true},
	}

	if v := os.Getenv(envBaseURI); v != "" {
		c.BootstrapBaseURI = v
	}
	if v := os.Getenv(envInterval); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.BootstrapInterval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.BootstrapRequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv(envVersions); v != "" {
		versions := make(map[string]bool)
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				versions[part] = true
			}
		}
		if len(versions) > 0 {
			c.SupportedVersions = versions
		}
	}

	return c
}
