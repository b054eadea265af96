package utils

import (
	"errors"
	"os"
)

func GetXDGRuntimeDir() (string, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", errors.New("XDG_RUNTIME_DIR environment variable not set")
	}
	return dir, nil
}
