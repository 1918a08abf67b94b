// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credentials resolves the Trello API key/token pair from layered
// sources: explicit CLI flags, then environment variables, then a local JSON
// configuration file. Resolution happens once at startup; the result is
// passed by parameter to downstream calls, never looked up ambiently.
package credentials

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/mlaneve/trellodown/pkg/types"
)

// Environment variable names consulted at the second layer.
const (
	EnvAPIKey = "TRELLO_API_KEY"
	EnvToken  = "TRELLO_TOKEN"
)

// DefaultFile is the credentials file consulted at the lowest layer.
const DefaultFile = "trello_config.json"

// fileCredentials is the on-disk JSON shape of the credentials file.
type fileCredentials struct {
	APIKey string `json:"api_key"`
	Token  string `json:"token"`
}

// Resolve returns the credentials pair from the highest layer that provides
// both values, or nil when no layer does. A key without a token (or the
// reverse) at one layer is treated as absent and does not shadow lower
// layers. Missing or unreadable files are not errors.
func Resolve(fs afero.Fs, log *slog.Logger, cliKey, cliToken, file string) *types.Credentials {
	if c := pair(cliKey, cliToken); c != nil {
		log.Debug("credentials resolved", "source", "flags")
		return c
	}

	if c := pair(os.Getenv(EnvAPIKey), os.Getenv(EnvToken)); c != nil {
		log.Debug("credentials resolved", "source", "env")
		return c
	}

	if file == "" {
		file = DefaultFile
	}
	if c := fromFile(fs, log, file); c != nil {
		log.Debug("credentials resolved", "source", "file", "path", file)
		return c
	}

	return nil
}

// pair builds a credentials value from a key/token pair, returning nil
// unless both are non-empty after trimming.
func pair(key, token string) *types.Credentials {
	key = strings.TrimSpace(key)
	token = strings.TrimSpace(token)
	if key == "" || token == "" {
		return nil
	}
	return &types.Credentials{APIKey: key, Token: token}
}

func fromFile(fs afero.Fs, log *slog.Logger, path string) *types.Credentials {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("credentials file unreadable", "path", path, "err", err)
		}
		return nil
	}

	var fc fileCredentials
	if err := json.Unmarshal(data, &fc); err != nil {
		log.Debug("credentials file is not valid JSON", "path", path, "err", err)
		return nil
	}
	return pair(fc.APIKey, fc.Token)
}
