package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertFileExists(t *testing.T, path string) {
	_, err := os.Stat(path)
	assert.NoError(t, err, "file should exist")
}

func AssertFileDoesNotExist(t *testing.T, path string) {
	stat, err := os.Stat(path)
	assert.Error(t, err, "file should not exist")
	assert.Nil(t, stat, "file should not exist")
}

func AssertFileContents(t *testing.T, path string, expected []byte) {
	// nolint:gosec
	contents, err := os.ReadFile(path)
	require.NoError(t, err, "should be able to read %s", path)
	assert.Equal(t, expected, contents, "contents of %s differ", path)
}
