// Package config handles loading and validation of TOML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/sirupsen/logrus"
)

type Config struct {
	path string
	mu   sync.RWMutex
	cfg  *UnsafeConfig
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	return &Config{path: configPath, cfg: cfg}, nil
}

// Get returns the current snapshot. Callers must not mutate it.
func (c *Config) Get() *UnsafeConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Reload re-reads the file and swaps the snapshot, keeping the old one on error.
func (c *Config) Reload() error {
	cfg, err := Load(c.path)
	if err != nil {
		return fmt.Errorf("cant reload config %s: %w", c.path, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	logrus.WithFields(logrus.Fields{"path": cfg.ConfigPath, "displays": len(cfg.Displays)}).Debug("Config reloaded")
	return nil
}

type UnsafeConfig struct {
	ConfigPath    string              `toml:"-"`
	ConfigDirPath string              `toml:"-"`
	General       *GeneralSection     `toml:"general"`
	HotReload     *HotReloadSection   `toml:"hot_reload_section"`
	Displays      map[string]*Display `toml:"displays"`
}

type GeneralSection struct {
	Destination *string        `toml:"destination"`
	StorePath   *string        `toml:"store_path"`
	Format      *PayloadFormat `toml:"format"`
}

type HotReloadSection struct {
	UpdateDebounceTimer *int `toml:"update_debounce_timer"`
}

type PayloadFormat int

const (
	Raw PayloadFormat = iota
	Hex
	Base64
)

var PayloadFormats = []PayloadFormat{Raw, Hex, Base64}

func (e PayloadFormat) Value() string {
	switch e {
	case Raw:
		return "raw"
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	}
	return ""
}

// Extension is the file suffix of payloads written in this format.
func (e PayloadFormat) Extension() string {
	switch e {
	case Hex:
		return ".vdc.hex"
	case Base64:
		return ".vdc.b64"
	}
	return ".vdc"
}

func (e PayloadFormat) MarshalText() ([]byte, error) {
	if e.Value() == "" {
		return nil, fmt.Errorf("invalid payload format %d", int(e))
	}
	return []byte(e.Value()), nil
}

func (e *PayloadFormat) UnmarshalText(text []byte) error {
	format, err := ParsePayloadFormat(string(text))
	if err != nil {
		return err
	}
	*e = format
	return nil
}

func ParsePayloadFormat(value string) (PayloadFormat, error) {
	for _, enum := range PayloadFormats {
		if enum.Value() == value {
			return enum, nil
		}
	}
	return Raw, fmt.Errorf("invalid payload format %q, expected one of %s", value, utils.FormatEnumTypes(PayloadFormats))
}

type SurfaceSection struct {
	Name   *string `toml:"name"`
	Handle *int64  `toml:"handle"`
}

type Display struct {
	Name              string          `toml:"-"`
	Width             *int32          `toml:"width"`
	Height            *int32          `toml:"height"`
	DensityDpi        *int32          `toml:"density_dpi"`
	Flags             []string        `toml:"flags"`
	ExtraFlags        *int32          `toml:"extra_flags"`
	UniqueID          *string         `toml:"unique_id"`
	GenerateUniqueID  *bool           `toml:"generate_unique_id"`
	DisplayIDToMirror *int32          `toml:"display_id_to_mirror"`
	MirrorMonitor     *string         `toml:"mirror_monitor"`
	Surface           *SurfaceSection `toml:"surface"`

	parsedFlags virtualdisplay.Flags
}

func Load(configPath string) (*UnsafeConfig, error) {
	configPath = os.ExpandEnv(configPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file %s not found", configPath)
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("cant convert config path to abs %w", err)
	}

	var config UnsafeConfig
	config.ConfigPath = absConfig
	config.ConfigDirPath = filepath.Dir(absConfig)
	if _, err := toml.DecodeFile(absConfig, &config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *UnsafeConfig) Validate() error {
	if len(c.Displays) == 0 {
		return errors.New("no displays defined")
	}

	if c.General == nil {
		c.General = &GeneralSection{}
	}
	if err := c.General.Validate(c.ConfigDirPath); err != nil {
		return fmt.Errorf("general section validation failed: %w", err)
	}

	if c.HotReload == nil {
		c.HotReload = &HotReloadSection{}
	}
	if err := c.HotReload.Validate(); err != nil {
		return fmt.Errorf("hot reload section validation failed: %w", err)
	}

	for _, name := range c.DisplayNames() {
		display := c.Displays[name]
		display.Name = name
		if err := display.Validate(); err != nil {
			return fmt.Errorf("display %s validation failed: %w", name, err)
		}
	}

	return nil
}

// DisplayNames returns the configured display names in sorted order.
func (c *UnsafeConfig) DisplayNames() []string {
	names := []string{}
	for name := range c.Displays {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *UnsafeConfig) ReliesOnHypr() bool {
	for _, display := range c.Displays {
		if display.MirrorMonitor != nil {
			return true
		}
	}
	return false
}

func (g *GeneralSection) Validate(configDir string) error {
	if g.Destination == nil {
		g.Destination = utils.StringPtr("$HOME/.cache/hyprvirtualdisplays")
	}
	if g.StorePath == nil {
		g.StorePath = utils.StringPtr("$HOME/.local/share/hyprvirtualdisplays/store")
	}
	if g.Format == nil {
		g.Format = utils.JustPtr(Raw)
	}

	g.Destination = utils.StringPtr(resolvePath(configDir, *g.Destination))
	g.StorePath = utils.StringPtr(resolvePath(configDir, *g.StorePath))

	return nil
}

func resolvePath(configDir, path string) string {
	path = os.ExpandEnv(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(configDir, path)
	}
	return path
}

func (h *HotReloadSection) Validate() error {
	if h.UpdateDebounceTimer == nil {
		h.UpdateDebounceTimer = utils.IntPtr(1000)
	}
	if *h.UpdateDebounceTimer < 0 {
		return errors.New("update_debounce_timer cant be < 0")
	}
	return nil
}

func (d *Display) Validate() error {
	required := []struct {
		field string
		value *int32
	}{
		{field: "width", value: d.Width},
		{field: "height", value: d.Height},
		{field: "density_dpi", value: d.DensityDpi},
	}
	for _, r := range required {
		if r.value == nil {
			return fmt.Errorf("%s is required", r.field)
		}
	}

	flags, err := virtualdisplay.ParseFlags(d.Flags)
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if d.ExtraFlags != nil {
		flags |= virtualdisplay.Flags(*d.ExtraFlags)
	}
	d.parsedFlags = flags

	if d.GenerateUniqueID == nil {
		d.GenerateUniqueID = utils.BoolPtr(false)
	}
	if *d.GenerateUniqueID && d.UniqueID != nil {
		return errors.New("generate_unique_id and unique_id are mutually exclusive")
	}

	if d.MirrorMonitor != nil {
		if d.DisplayIDToMirror != nil {
			return errors.New("mirror_monitor and display_id_to_mirror are mutually exclusive")
		}
		if *d.MirrorMonitor == "" {
			return errors.New("mirror_monitor cant be empty")
		}
	}

	if d.Surface != nil {
		if err := d.Surface.Validate(); err != nil {
			return fmt.Errorf("surface validation failed: %w", err)
		}
	}

	// resolved fields are applied by the caller, everything else must build
	b, err := d.NewBuilder()
	if err != nil {
		return err
	}
	if _, err := b.Build(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"display": d.Name,
		"flags":   d.parsedFlags.String(),
	}).Debug("Display validated")

	return nil
}

// ParsedFlags is the union of the named flags and extra_flags.
func (d *Display) ParsedFlags() virtualdisplay.Flags {
	return d.parsedFlags
}

// NewBuilder returns a builder carrying every statically configured field.
// Fields that need runtime resolution (mirror_monitor, generate_unique_id)
// are left to the caller.
func (d *Display) NewBuilder() (*virtualdisplay.Builder, error) {
	b, err := virtualdisplay.NewBuilder(d.Name, *d.Width, *d.Height, *d.DensityDpi)
	if err != nil {
		return nil, err
	}
	if d.parsedFlags != 0 {
		b.SetFlags(d.parsedFlags)
	}
	if d.Surface != nil {
		b.SetSurface(d.Surface.Ref())
	}
	if d.UniqueID != nil {
		b.SetUniqueID(*d.UniqueID)
	}
	if d.DisplayIDToMirror != nil {
		b.SetDisplayIDToMirror(*d.DisplayIDToMirror)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *SurfaceSection) Validate() error {
	if s.Name == nil {
		return errors.New("name is required")
	}
	if s.Handle == nil {
		s.Handle = utils.JustPtr[int64](0)
	}
	return s.Ref().Validate()
}

func (s *SurfaceSection) Ref() *surface.Ref {
	return &surface.Ref{Name: *s.Name, Handle: *s.Handle}
}
