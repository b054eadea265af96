package testutils

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func SetupHyprEnvVars(t *testing.T) (string, string) {
	tempDir := t.TempDir()
	signature := "test_signature"
	hyprDir := filepath.Join(tempDir, "hypr", signature)
	//nolint:gosec
	err := os.MkdirAll(hyprDir, 0o755)
	require.NoError(t, err, "failed to create hypr directory")

	t.Setenv("XDG_RUNTIME_DIR", tempDir)
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", signature)
	return tempDir, signature
}

func SetupHyprSocket(ctx context.Context, t *testing.T, xdgRuntimeDir, signature string,
	hyprSocketFun func(string, string) string,
) (net.Listener, func()) {
	socketPath := hyprSocketFun(xdgRuntimeDir, signature)
	lc := &net.ListenConfig{}
	listener, err := lc.Listen(ctx, "unix", socketPath)
	require.NoError(t, err, "failed to create a test socket %s", socketPath)
	return listener, func() {
		_ = listener.Close()
	}
}

// SetupFakeHyprIPCWriter answers one connection per expected command with the
// matching response and closes it, the way the Hyprland request socket does.
func SetupFakeHyprIPCWriter(t *testing.T, listener net.Listener, responseData [][]byte,
	expectedCommands []string,
) chan struct{} {
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		Logf(t, "Starting hypr server")
		for i, command := range expectedCommands {
			respondToHyprIPC(t, listener, command, responseData[i])
		}
		Logf(t, "Ending hypr server")
	}()
	return serverDone
}

func respondToHyprIPC(t *testing.T, listener net.Listener, command string, response []byte) {
	conn, err := listener.Accept()
	if !assert.NoError(t, err, "failed to accept connection") {
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// requests are not newline terminated, a single read holds the command
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	assert.NoError(t, err, "failed to read")
	assert.Equal(t, command, string(buf[:n]), "wrong command")

	_, err = conn.Write(response)
	assert.NoError(t, err, "failed to write response")
	Logf(t, "wrote response to the client %s", string(response))
}
