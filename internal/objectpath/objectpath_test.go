package objectpath

import (
	"testing"

	"rawstore/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		params  map[string]string
		want    string
		wantVar string
	}{
		{
			name:    "owner dataset path layout",
			pattern: "{owner}/{dataset}/{path}",
			params:  map[string]string{"owner": "owner", "dataset": "name", "path": "data/file1.xls"},
			want:    "owner/name/data/file1.xls",
		},
		{
			name:    "no placeholders",
			pattern: "static/key",
			params:  map[string]string{},
			want:    "static/key",
		},
		{
			name:    "adjacent placeholders",
			pattern: "{md5_hex}{extension}",
			params:  map[string]string{"md5_hex": "abc", "extension": ".xls"},
			want:    "abc.xls",
		},
		{
			name:    "missing variable",
			pattern: "{owner}/{unknown}/{path}",
			params:  map[string]string{"owner": "owner", "path": "x"},
			wantVar: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.pattern, tt.params)
			if tt.wantVar != "" {
				var mv *MissingVariableError
				require.ErrorAs(t, err, &mv)
				assert.Equal(t, tt.wantVar, mv.Variable)
				assert.Contains(t, mv.Error(), tt.wantVar)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildParams(t *testing.T) {
	file := model.FileDescriptor{
		Name:   "file1.xls",
		MD5:    "BE4Y8L87GawEKKdchUNhlA==",
		Length: 100,
	}

	params := BuildParams(file, "owner", "name", "data/file1.xls")

	assert.Equal(t, "owner", params["owner"])
	assert.Equal(t, "name", params["dataset"])
	assert.Equal(t, "data/file1.xls", params["path"])
	assert.Equal(t, "file1.xls", params["basename"])
	assert.Equal(t, "data", params["dirname"])
	assert.Equal(t, ".xls", params["extension"])
	assert.Equal(t, "100", params["length"])
	assert.Equal(t, "044e18f0bf3b19ac0428a75c85436194", params["md5_hex"])
}

func TestBuildParamsHashAddressedKey(t *testing.T) {
	file := model.FileDescriptor{MD5: "BE4Y8L87GawEKKdchUNhlA==", Length: 100}

	key, err := Format("{md5_hex}{extension}", BuildParams(file, "owner", "name", "data/file1.xls"))

	require.NoError(t, err)
	assert.Equal(t, "044e18f0bf3b19ac0428a75c85436194.xls", key)
}

func TestBuildParamsUndecodableDigest(t *testing.T) {
	file := model.FileDescriptor{MD5: "not base64!!!", Length: 1}

	params := BuildParams(file, "o", "d", "file.csv")

	// Decoding failure is non-fatal: md5 stays, md5_hex is omitted.
	assert.Equal(t, "not base64!!!", params["md5"])
	_, ok := params["md5_hex"]
	assert.False(t, ok)
}

func TestBuildParamsTopLevelPath(t *testing.T) {
	params := BuildParams(model.FileDescriptor{}, "o", "d", "file1.xls")

	assert.Equal(t, "file1.xls", params["basename"])
	assert.Equal(t, "", params["dirname"])
	assert.Equal(t, ".xls", params["extension"])
}
