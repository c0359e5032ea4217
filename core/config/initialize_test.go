package config

import (
	"bytes"
	"io"
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Load config.yaml path", func(t *testing.T) {
		cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
		assert.Equal(t, tempDir, cfg.Dir())
	})

	t.Run("OpenSessionLog", func(t *testing.T) {
		fd, err := cfg.OpenSessionLog()
		assert.Nil(t, err)
		_, err = io.WriteString(fd, "{}\n")
		assert.Nil(t, err)
		fd.Close()

		// Appends rather than truncating.
		fd, err = cfg.OpenSessionLog()
		assert.Nil(t, err)
		_, err = io.WriteString(fd, "{}\n")
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("ReadSessionLog", func(t *testing.T) {
		fd, err := cfg.ReadSessionLog()
		assert.Nil(t, err)
		defer fd.Close()

		contents, err := ioutil.ReadAll(fd)
		assert.Nil(t, err)
		assert.Equal(t, "{}\n{}\n", string(contents))
	})

	t.Run("HistoryPath", func(t *testing.T) {
		assert.Equal(t, filepath.Join(tempDir, "history"), cfg.HistoryPath())
	})
}

func TestInitialize_keepsExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	custom := []byte("prompt: '> '\nhistory_file: ''\nsession_log: ''\ncolor: never\nenv: {}\naliases: {}\nworking_dir: /tmp\n")
	assert.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", custom, 0600))

	logs := &bytes.Buffer{}
	cfg, err := initialize(fs, "/cfg", log.New(logs, "", 0))

	assert.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Contains(t, logs.String(), "Using existing configuration")

	fd, err := cfg.OpenSessionLog()
	assert.NoError(t, err)
	assert.Nil(t, fd, "logging disabled")
}

func TestLoad_errors(t *testing.T) {
	cases := map[string]string{
		"unknown field": "prompt: x\nport: 22\n",
		"invalid color": "prompt: x\ncolor: blue\n",
		"not yaml":      "prompt: [",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			assert.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte(contents), 0600))

			_, err := load(fs, "/cfg")
			assert.Error(t, err)
		})
	}

	_, err := load(afero.NewMemMapFs(), "/missing")
	assert.Error(t, err)
}
