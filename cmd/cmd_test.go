package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	encoded, err := execute(t, "",
		"encode", "--name", "disp1", "--width", "1920", "--height", "1080", "--density-dpi", "160",
		"--format", "hex")
	require.NoError(t, err)
	assert.Equal(t, "00000000050000006400690073007000310000008007000038040000a00000000000000000000000\n", encoded)

	decoded, err := execute(t, encoded, "decode", "--format", "hex", "--output", "json")
	require.NoError(t, err)

	var view displayView
	require.NoError(t, json.Unmarshal([]byte(decoded), &view))
	assert.Equal(t, "disp1", view.Name)
	assert.Equal(t, int32(1920), view.Width)
	assert.Equal(t, int32(1080), view.Height)
	assert.Equal(t, int32(160), view.DensityDpi)
	assert.False(t, view.HasUniqueID)
	assert.Nil(t, view.Surface)
}

func TestDecode_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vdc")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x00}, 0o600))

	_, err := execute(t, "", "decode", "--input", path, "--format", "raw", "--output", "text")
	assert.ErrorIs(t, err, errs.ErrMalformed)
}
