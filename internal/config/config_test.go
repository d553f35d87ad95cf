package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigFromMissingFile(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws_profile: ops\naws_region: eu-west-1\nlog_level: debug\n"), 0o644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{AWSProfile: "ops", AWSRegion: "eu-west-1", LogLevel: "debug"}, cfg)
}

func TestLoadConfigFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws_region: [unterminated"), 0o644))

	_, err := LoadConfigFrom(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestResolveDefaults(t *testing.T) {
	s := Resolve(NewViper(), nil, envMap(nil))
	assert.Equal(t, Settings{Region: DefaultRegion, LogLevel: DefaultLogLevel}, s)
}

func TestResolvePrecedence(t *testing.T) {
	cfg := &Config{AWSProfile: "file-profile", AWSRegion: "eu-west-1", LogLevel: "warn"}
	env := envMap(map[string]string{"AWS_PROFILE": "env-profile", "AWS_REGION": "us-east-1"})

	s := Resolve(NewViper(), cfg, envMap(nil))
	assert.Equal(t, Settings{Profile: "file-profile", Region: "eu-west-1", LogLevel: "warn"}, s)

	s = Resolve(NewViper(), cfg, env)
	assert.Equal(t, "env-profile", s.Profile, "AWS env overrides the config file")
	assert.Equal(t, "us-east-1", s.Region, "AWS_REGION overrides the config file")
	assert.Equal(t, "warn", s.LogLevel)

	v := NewViper()
	v.Set(KeyRegion, "us-west-2")
	v.Set(KeyLogLevel, "debug")
	s = Resolve(v, cfg, env)
	assert.Equal(t, "us-west-2", s.Region)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "env-profile", s.Profile)
}

func TestResolveAWSDefaultRegion(t *testing.T) {
	s := Resolve(NewViper(), &Config{AWSRegion: "eu-west-1"}, envMap(map[string]string{"AWS_DEFAULT_REGION": "sa-east-1"}))
	assert.Equal(t, "sa-east-1", s.Region)
}

func TestResolveReadsPrefixedEnv(t *testing.T) {
	t.Setenv("ASGCHECK_LOG_LEVEL", "error")
	t.Setenv("ASGCHECK_REGION", "ca-central-1")

	s := Resolve(NewViper(), &Config{AWSRegion: "eu-west-1"}, envMap(nil))
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, "ca-central-1", s.Region)
}
