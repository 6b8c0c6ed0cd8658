// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads NCBI credentials from a directory of plain-text files.
// Each file in the directory holds one secret: the filename is the key name and
// the trimmed file contents are the value.
//
// Two keys are read by the gateway:
//
//   - ncbi-api-key: sent as api_key on every E-utilities call. NCBI allows
//     10 requests per second with a key and 3 without one.
//   - ncbi-email: sent as email so NCBI can contact the operator before
//     blocking a misbehaving client.
//
// Values set in the config file or environment (eutils.api_key,
// eutils.email) take precedence over these files. Other files in the
// directory are loaded but unused.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultDir is the secrets directory, relative to the working directory.
const DefaultDir = ".secrets"

// Key file names under DefaultDir.
const (
	NCBIAPIKey = "ncbi-api-key"
	NCBIEmail  = "ncbi-email"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Get returns the value of key in s, or fallback when it is absent.
func Get(s map[string]string, key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}
