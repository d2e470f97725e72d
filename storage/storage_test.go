package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"host only", "https://cdn.example.com", "imports/teams/3/b.xlsx", "https://cdn.example.com/imports/teams/3/b.xlsx"},
		{"trailing slash", "https://cdn.example.com/", "imports/x.xlsx", "https://cdn.example.com/imports/x.xlsx"},
		{"base with path", "https://cdn.example.com/roster", "/imports/x.xlsx", "https://cdn.example.com/roster/imports/x.xlsx"},
		{"no base", "", "imports/x.xlsx", ""},
		{"no key", "https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicURL(tt.base, tt.key))
		})
	}
}

func TestImportArchiveKey(t *testing.T) {
	assert.Equal(t, "imports/teams/12/abc.xlsx", ImportArchiveKey(12, "abc"))
}

func TestCloudflareR2UploaderConfig_Configured(t *testing.T) {
	full := CloudflareR2UploaderConfig{
		AccountID: "acc", AccessKeyID: "key", SecretAccessKey: "secret",
		BucketName: "bucket", PublicBaseURL: "https://cdn.example.com",
	}
	assert.True(t, full.Configured())

	partial := full
	partial.BucketName = ""
	assert.False(t, partial.Configured())
	assert.False(t, CloudflareR2UploaderConfig{}.Configured())
}
