package virtualdisplay

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

func validateName(name string) error {
	if name == "" {
		return errors.New("name cant be empty")
	}
	return validateText("name", name)
}

// validateText rejects strings the UTF-16 wire encoding would rewrite.
func validateText(field, value string) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid utf-8: %q", field, value)
	}
	return nil
}

func validatePositive(field string, value int32) error {
	if value < 1 {
		return fmt.Errorf("%s needs to be >= 1, got %d", field, value)
	}
	return nil
}

func validateRequired(name string, width, height, densityDpi int32) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validatePositive("width", width); err != nil {
		return err
	}
	if err := validatePositive("height", height); err != nil {
		return err
	}
	return validatePositive("densityDpi", densityDpi)
}

func (c *VirtualDisplayConfig) validate() error {
	if err := validateRequired(c.name, c.width, c.height, c.densityDpi); err != nil {
		return err
	}
	if c.hasUniqueID {
		if err := validateText("uniqueId", c.uniqueID); err != nil {
			return err
		}
	}
	if c.surface != nil {
		if err := c.surface.Validate(); err != nil {
			return fmt.Errorf("invalid surface: %w", err)
		}
	}
	return nil
}
