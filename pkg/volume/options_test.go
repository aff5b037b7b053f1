package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xetdata/docker-volume-xetfs/pkg/errdefs"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      map[string]string
		wantErr   error
		wantMsg   string
		writeable bool
		watch     string
	}{
		{
			name: "minimal",
			opts: map[string]string{"repo": "r", "commit": "c"},
		},
		{
			name:      "keys are case-insensitive",
			opts:      map[string]string{"REPO": "r", "Commit": "c", "Write": "TRUE"},
			writeable: true,
		},
		{
			name:  "watch is lower-cased",
			opts:  map[string]string{"repo": "r", "commit": "c", "watch": "30S"},
			watch: "30s",
		},
		{
			name: "unparseable write defaults to false",
			opts: map[string]string{"repo": "r", "commit": "c", "write": "yes please"},
		},
		{
			name:      "write accepts 1",
			opts:      map[string]string{"repo": "r", "commit": "c", "write": "1"},
			writeable: true,
		},
		{
			name:    "missing repo",
			opts:    map[string]string{"commit": "c"},
			wantErr: errdefs.ErrInvalidOptions,
			wantMsg: `invalid options: "repo" option not set`,
		},
		{
			name:    "missing commit",
			opts:    map[string]string{"repo": "r"},
			wantErr: errdefs.ErrInvalidOptions,
			wantMsg: `invalid options: "commit" option not set`,
		},
		{
			name:    "empty repo value",
			opts:    map[string]string{"repo": "", "commit": "c"},
			wantErr: errdefs.ErrInvalidOptions,
		},
		{
			name:    "write and watch",
			opts:    map[string]string{"repo": "r", "commit": "c", "write": "true", "watch": "1m"},
			wantErr: errdefs.ErrInvalidOptions,
			wantMsg: "invalid options: writable and watch are incompatible options",
		},
		{
			name:  "write=false and watch",
			opts:  map[string]string{"repo": "r", "commit": "c", "write": "false", "watch": "1m"},
			watch: "1m",
		},
		{
			name:    "bad watch interval",
			opts:    map[string]string{"repo": "r", "commit": "c", "watch": "soon"},
			wantErr: errdefs.ErrInvalidOptions,
			wantMsg: "invalid options: interval provided for watch: soon is invalid",
		},
		{
			name:    "empty watch value",
			opts:    map[string]string{"repo": "r", "commit": "c", "watch": ""},
			wantErr: errdefs.ErrInvalidOptions,
			wantMsg: "invalid options: interval provided for watch:  is invalid",
		},
		{
			name:    "write and empty watch",
			opts:    map[string]string{"repo": "r", "commit": "c", "write": "true", "watch": ""},
			wantErr: errdefs.ErrInvalidOptions,
			wantMsg: "invalid options: writable and watch are incompatible options",
		},
		{
			name:    "blank watch value",
			opts:    map[string]string{"repo": "r", "commit": "c", "watch": "  "},
			wantErr: errdefs.ErrInvalidOptions,
		},
		{
			name:    "unrecognized key",
			opts:    map[string]string{"repo": "r", "commit": "c", "Branch": "main"},
			wantErr: errdefs.ErrUnrecognizedOption,
			wantMsg: "unrecognized option: Branch",
		},
		{
			name:    "unrecognized key wins over missing repo",
			opts:    map[string]string{"size": "10G"},
			wantErr: errdefs.ErrUnrecognizedOption,
			wantMsg: "unrecognized option: size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseOptions(tt.opts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}
				assert.Nil(t, v)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "r", v.Repo)
			assert.Equal(t, "c", v.Commit)
			assert.Equal(t, tt.writeable, v.Writeable)
			assert.Equal(t, tt.watch, v.Watch)
			assert.Equal(t, tt.watch != "", v.Watching())
			assert.Empty(t, v.MountPath)
		})
	}
}

func TestParseOptionsCredentials(t *testing.T) {
	v, err := ParseOptions(map[string]string{
		"repo":     "https://xethub.com/org/repo",
		"commit":   "main",
		"username": "alice",
		"PAT":      "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", v.Username)
	assert.Equal(t, "s3cret", v.PAT)
	assert.True(t, v.HasCredentials())
}

func TestParseOptionsDeterministicUnknownKey(t *testing.T) {
	opts := map[string]string{"zeta": "1", "alpha": "2", "repo": "r", "commit": "c"}
	for i := 0; i < 20; i++ {
		_, err := ParseOptions(opts)
		require.Error(t, err)
		assert.Equal(t, "unrecognized option: alpha", err.Error())
	}
}

func TestRedactOptions(t *testing.T) {
	opts := map[string]string{"repo": "r", "Pat": "s3cret"}
	red := RedactOptions(opts)

	assert.Equal(t, "r", red["repo"])
	assert.Equal(t, "<redacted>", red["Pat"])
	assert.Equal(t, "s3cret", opts["Pat"], "input must not be modified")
}

func TestMountPath(t *testing.T) {
	assert.Equal(t, "/data/v1", MountPath("/data", "v1"))
	assert.Equal(t, "/data/v1", MountPath("/data/", "v1"))
	assert.Equal(t, MountPath("/mnt", "x"), MountPath("/mnt", "x"))
}
