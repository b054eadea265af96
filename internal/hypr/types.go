package hypr

import (
	"errors"
	"fmt"
)

type MonitorSpec struct {
	Name        string `json:"name"`
	ID          *int   `json:"id"`
	Description string `json:"description"`
	Disabled    bool   `json:"disabled"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Mirror      string `json:"mirrorOf"`
}

func (m *MonitorSpec) HasMirror() bool {
	return m.Mirror != "none" && m.Mirror != ""
}

func (m *MonitorSpec) Validate() error {
	if m.ID == nil {
		return errors.New("id cant be nil")
	}
	if *m.ID < 0 {
		return errors.New("id cant < 0")
	}
	if m.Name == "" {
		return errors.New("name cant be empty")
	}
	return nil
}

type MonitorSpecs []*MonitorSpec

func (m MonitorSpecs) Validate() error {
	if len(m) == 0 {
		return errors.New("no monitors detected")
	}

	for _, monitor := range m {
		if err := monitor.Validate(); err != nil {
			return fmt.Errorf("invalid monitor: %w", err)
		}
	}

	return nil
}

// FindByName matches either the connector name or the monitor description.
func (m MonitorSpecs) FindByName(name string) (*MonitorSpec, bool) {
	for _, monitor := range m {
		if monitor.Name == name || monitor.Description == name {
			return monitor, true
		}
	}
	return nil, false
}
