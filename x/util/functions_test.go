package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("", "anything"))
	assert.True(t, MatchesQuery("  ", "anything"))
	assert.True(t, MatchesQuery("ADA", "Tale of ada"))
	assert.True(t, MatchesQuery("bo", "x", "Bob"))
	assert.False(t, MatchesQuery("zed", "Ada", "Bob"))
	assert.False(t, MatchesQuery("zed"))
}

func TestPointerHelpers(t *testing.T) {
	assert.Nil(t, PtrOrNil(""))
	assert.Equal(t, "a", *PtrOrNil("a"))

	assert.Equal(t, "fb", Deref(nil, "fb"))
	empty := ""
	assert.Equal(t, "fb", Deref(&empty, "fb"))
	value := "v"
	assert.Equal(t, "v", Deref(&value, "fb"))

	var nilSlice []string
	assert.Equal(t, []string{}, NonNil(nilSlice))
	assert.Equal(t, []int{1}, NonNil([]int{1}))
}

func TestConfigLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
server:
  dsn: "host=localhost"
  redisAddr: "localhost:6379"
  memcachedAddr: "localhost:11211"
auth:
  jwtSecret: "secret"
assist:
  apiKey: "key"
`), 0o600)
	assert.NoError(t, err)

	config := Config{}
	err = config.Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "host=localhost", config.Server.Dsn)
	assert.Equal(t, "localhost:6379", config.Server.RedisAddr)
	assert.Equal(t, ":8000", config.Server.Listen)
	assert.Equal(t, "http://localhost:8000", config.Server.PublicURL)
	assert.Equal(t, "secret", config.Auth.JWTSecret)
	assert.Equal(t, 24*7, config.Auth.SessionTTLHours)
	assert.Equal(t, "gpt-4o-mini", config.Assist.Model)
}

func TestBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.LessOrEqual(t, len(info.GitHash), 7)
}
