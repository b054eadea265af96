// Package testutils provides utils for testing
// should not be imported by any other app packages
package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	cfg     *config.UnsafeConfig
	t       *testing.T
	cfgFile *string
}

func NewTestConfig(t *testing.T) *TestConfig {
	return &TestConfig{cfg: &config.UnsafeConfig{}, t: t}
}

func (t *TestConfig) WithDisplays(displays map[string]*config.Display) *TestConfig {
	t.cfg.Displays = displays
	return t
}

func (t *TestConfig) WithGeneral(g *config.GeneralSection) *TestConfig {
	t.cfg.General = g
	return t
}

func (t *TestConfig) WithHotReload(h *config.HotReloadSection) *TestConfig {
	t.cfg.HotReload = h
	return t
}

func (t *TestConfig) WithConfigDir(dir string) *TestConfig {
	require.NoError(t.t, os.MkdirAll(dir, 0o750))

	cfgFile := filepath.Join(dir, "config.toml")
	t.cfgFile = &cfgFile
	return t
}

func (t *TestConfig) WithConfigPath(path string) *TestConfig {
	t.cfgFile = &path
	return t
}

func (t *TestConfig) SaveToFile() *TestConfig {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(t.cfg); err != nil {
		t.t.Fatalf("cant encode config: %v", err)
	}
	require.NotNil(t.t, t.cfgFile, "cfgFile cant be nil")
	if err := utils.WriteAtomic(*t.cfgFile, buf.Bytes()); err != nil {
		t.t.Fatalf("cant write config: %v", err)
	}
	return t
}

func (t *TestConfig) createConfig() *config.Config {
	logrus.WithFields(logrus.Fields{"path": *t.cfgFile}).Debug("Creating config")
	cfg, err := config.NewConfig(*t.cfgFile)
	require.NoError(t.t, err, "cant create config")

	return cfg
}

// FillDefaults adds a single display and keeps every written path inside a temp dir.
func (t *TestConfig) FillDefaults() *TestConfig {
	if t.cfg.Displays == nil {
		t = t.WithDisplays(map[string]*config.Display{
			"disp1": {
				Width:      utils.JustPtr[int32](1920),
				Height:     utils.JustPtr[int32](1080),
				DensityDpi: utils.JustPtr[int32](160),
			},
		})
	}
	if t.cfgFile == nil {
		t = t.WithConfigDir(t.t.TempDir())
	}
	if t.cfg.General == nil {
		dir := filepath.Dir(*t.cfgFile)
		t.cfg.General = &config.GeneralSection{
			Destination: utils.StringPtr(filepath.Join(dir, "out")),
			StorePath:   utils.StringPtr(filepath.Join(dir, "store")),
		}
	}
	return t
}

func (t *TestConfig) Get() *config.Config {
	return t.FillDefaults().SaveToFile().createConfig()
}

// Path returns the config file location, valid after Get or SaveToFile.
func (t *TestConfig) Path() string {
	require.NotNil(t.t, t.cfgFile, "cfgFile cant be nil")
	return *t.cfgFile
}

func Logf(t *testing.T, format string, args ...any) {
	logrus.Debugf(format, args...)
	t.Logf(format, args...)
}
