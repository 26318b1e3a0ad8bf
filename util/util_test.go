package util

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	BaseUrl  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
}

func TestLoadConfigWritesSample(t *testing.T) {

	path := filepath.Join(t.TempDir(), "dasbor.yaml")
	data := []byte("base_url: http://localhost:3000\npage_size: 10\n")

	cfg := sample{}
	created, err := LoadConfig(&cfg, path, data, 0600)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, sample{BaseUrl: "http://localhost:3000", PageSize: 10}, cfg)

	require.NoError(t, WriteConfig(sample{BaseUrl: "https://admin.example.com", PageSize: 5}, path, 0600))

	cfg = sample{}
	created, err = LoadConfig(&cfg, path, data, 0600)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "https://admin.example.com", cfg.BaseUrl)
}

func TestLoadConfigBadYaml(t *testing.T) {

	path := filepath.Join(t.TempDir(), "dasbor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [nope"), 0600))

	_, err := LoadConfig(&sample{}, path, nil, 0600)
	assert.ErrorContains(t, err, "failed to unmarshal")
}

func TestOpenLog(t *testing.T) {

	assert.Equal(t, io.Discard, OpenLog("", 0600))

	path := filepath.Join(t.TempDir(), "dasbor.log")
	file := OpenLog(path, 0600)
	_, err := file.Write([]byte("hello\n"))
	require.NoError(t, err)
	CloseLog(file)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
