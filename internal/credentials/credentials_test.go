// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credentials

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlaneve/trellodown/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCredsFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		cliKey   string
		cliToken string
		envKey   string
		envToken string
		file     string
		want     *types.Credentials
	}{
		{
			name:   "flags win over everything",
			cliKey: "flag-key", cliToken: "flag-token",
			envKey: "env-key", envToken: "env-token",
			file: `{"api_key": "file-key", "token": "file-token"}`,
			want: &types.Credentials{APIKey: "flag-key", Token: "flag-token"},
		},
		{
			name:   "partial flags fall through to env",
			cliKey: "flag-key",
			envKey: "env-key", envToken: "env-token",
			want: &types.Credentials{APIKey: "env-key", Token: "env-token"},
		},
		{
			name: "env beats file",
			envKey: "env-key", envToken: "env-token",
			file: `{"api_key": "file-key", "token": "file-token"}`,
			want: &types.Credentials{APIKey: "env-key", Token: "env-token"},
		},
		{
			name: "file used when flags and env absent",
			file: `{"api_key": "file-key", "token": "file-token"}`,
			want: &types.Credentials{APIKey: "file-key", Token: "file-token"},
		},
		{
			name: "partial file is absent",
			file: `{"api_key": "file-key"}`,
			want: nil,
		},
		{
			name: "values are trimmed",
			file: `{"api_key": "  k  ", "token": "\tt\n"}`,
			want: &types.Credentials{APIKey: "k", Token: "t"},
		},
		{
			name: "garbled file is not fatal",
			file: `{not json`,
			want: nil,
		},
		{
			name: "nothing resolves",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tt.envKey)
			t.Setenv(EnvToken, tt.envToken)

			fs := afero.NewMemMapFs()
			if tt.file != "" {
				writeCredsFile(t, fs, DefaultFile, tt.file)
			}

			got := Resolve(fs, discardLogger(), tt.cliKey, tt.cliToken, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCustomFilePath(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvToken, "")

	fs := afero.NewMemMapFs()
	writeCredsFile(t, fs, "conf/keys.json", `{"api_key": "k", "token": "t"}`)

	got := Resolve(fs, discardLogger(), "", "", "conf/keys.json")
	require.NotNil(t, got)
	assert.Equal(t, "k", got.APIKey)
	assert.Equal(t, "t", got.Token)
}

func TestResolveMissingFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvToken, "")

	got := Resolve(afero.NewMemMapFs(), discardLogger(), "", "", "nope.json")
	assert.Nil(t, got)
}
