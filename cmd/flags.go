package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
	"github.com/spf13/pflag"
)

type payloadFormatValue struct {
	format config.PayloadFormat
}

var _ pflag.Value = (*payloadFormatValue)(nil)

func (p *payloadFormatValue) String() string {
	return p.format.Value()
}

func (p *payloadFormatValue) Set(value string) error {
	format, err := config.ParsePayloadFormat(value)
	if err != nil {
		return err
	}
	p.format = format
	return nil
}

func (p *payloadFormatValue) Type() string {
	return "format"
}

type outputValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*outputValue)(nil)

func newOutputValue(value string, allowed ...string) *outputValue {
	return &outputValue{value: value, allowed: allowed}
}

func (o *outputValue) String() string {
	return o.value
}

func (o *outputValue) Set(value string) error {
	if !slices.Contains(o.allowed, value) {
		return fmt.Errorf("invalid output %q, expected one of [%s]", value, strings.Join(o.allowed, ", "))
	}
	o.value = value
	return nil
}

func (o *outputValue) Type() string {
	return "output"
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cant read stdin: %w", err)
		}
		return data, nil
	}
	//nolint:gosec
	data, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("cant read %s: %w", path, err)
	}
	return data, nil
}
