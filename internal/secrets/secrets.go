// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and SMTP identity from a directory of
// plain-text files and from a .env file. In the directory, each file is one
// secret: the filename is the key and the trimmed contents are the value.
package secrets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// Secret file names.
const (
	GoogleAPIKey = "google-api-key"
	GoogleCSEID  = "google-cse-id"
	SMTPHeloName = "smtp-helo-name"
	SMTPFrom     = "smtp-from"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Unreadable files are
// logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "reading secrets directory %s", dir)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			zap.L().Warn("secrets: could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// LoadEnv loads path (a .env file) into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return eris.Wrapf(err, "loading %s", path)
	}
	return nil
}

// Apply copies known secrets into cfg. Values already present in cfg win.
func Apply(cfg *types.Config, secrets map[string]string) {
	setIfEmpty(&cfg.Search.GoogleAPIKey, secrets[GoogleAPIKey])
	setIfEmpty(&cfg.Search.GoogleCSEID, secrets[GoogleCSEID])
	setIfEmpty(&cfg.Verify.HeloName, secrets[SMTPHeloName])
	setIfEmpty(&cfg.Verify.MailFrom, secrets[SMTPFrom])
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
