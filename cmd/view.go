package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"gopkg.in/yaml.v3"
)

type surfaceView struct {
	Name   string `json:"name" yaml:"name"`
	Handle int64  `json:"handle" yaml:"handle"`
}

type displayView struct {
	Name              string       `json:"name" yaml:"name"`
	Width             int32        `json:"width" yaml:"width"`
	Height            int32        `json:"height" yaml:"height"`
	DensityDpi        int32        `json:"density_dpi" yaml:"density_dpi"`
	Flags             int32        `json:"flags" yaml:"flags"`
	FlagNames         []string     `json:"flag_names" yaml:"flag_names"`
	Surface           *surfaceView `json:"surface,omitempty" yaml:"surface,omitempty"`
	HasUniqueID       bool         `json:"has_unique_id" yaml:"has_unique_id"`
	UniqueID          *string      `json:"unique_id,omitempty" yaml:"unique_id,omitempty"`
	DisplayIDToMirror int32        `json:"display_id_to_mirror" yaml:"display_id_to_mirror"`
}

// newDisplayView hides the unique id unless showUniqueID is set.
func newDisplayView(cfg *virtualdisplay.VirtualDisplayConfig, showUniqueID bool) *displayView {
	view := &displayView{
		Name:              cfg.Name(),
		Width:             cfg.Width(),
		Height:            cfg.Height(),
		DensityDpi:        cfg.DensityDpi(),
		Flags:             int32(cfg.Flags()),
		FlagNames:         cfg.Flags().Names(),
		DisplayIDToMirror: cfg.DisplayIDToMirror(),
	}
	if ref := cfg.Surface(); ref != nil {
		view.Surface = &surfaceView{Name: ref.Name, Handle: ref.Handle}
	}
	if id, ok := cfg.UniqueID(); ok {
		view.HasUniqueID = true
		if showUniqueID {
			view.UniqueID = &id
		}
	}
	return view
}

func writeView(w io.Writer, output string, view *displayView) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("cant encode json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("cant encode yaml: %w", err)
		}
		return enc.Close()
	}

	surfaceRef := "none"
	if view.Surface != nil {
		surfaceRef = fmt.Sprintf("%s#%d", view.Surface.Name, view.Surface.Handle)
	}
	uniqueID := "unset"
	switch {
	case view.UniqueID != nil:
		uniqueID = *view.UniqueID
	case view.HasUniqueID:
		uniqueID = "set (hidden, use --show-unique-id)"
	}
	flags := "none"
	if len(view.FlagNames) > 0 {
		flags = strings.Join(view.FlagNames, "|")
	}

	_, err := fmt.Fprintf(w, `name:                 %s
size:                 %dx%d
density_dpi:          %d
flags:                %s (0x%x)
surface:              %s
unique_id:            %s
display_id_to_mirror: %d
`, view.Name, view.Width, view.Height, view.DensityDpi, flags, uint32(view.Flags), surfaceRef, uniqueID, view.DisplayIDToMirror)
	return err
}
