// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files,
// one secret per file: the filename is the key name and the trimmed
// file contents are the value. The comparison pipeline needs exactly
// one secret, KeyOpenAI, for the remote-model checker; other files are
// still loaded so related credentials can live alongside it.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeyOpenAI is the filename holding the remote-model API key.
const KeyOpenAI = "openai-api-key"

// Load reads every regular, non-hidden file in dir into a key/value
// map. A missing directory is not an error: a checkout without a
// .secrets/ directory simply runs with no remote checker available.
// Unreadable files warn on stderr and are skipped.
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
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if value, ok := readSecret(filepath.Join(dir, entry.Name())); ok {
			secrets[entry.Name()] = value
		}
	}
	return secrets, nil
}

// readSecret returns the trimmed contents of one secret file. Empty
// files report false so a blank placeholder never masks a missing key.
func readSecret(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", filepath.Base(path), err)
		return "", false
	}
	value := strings.TrimSpace(string(data))
	return value, value != ""
}
