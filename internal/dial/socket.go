// Package dial provides unix socket helpers.
package dial

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/sirupsen/logrus"
)

// GetUnixSocketConnection connects to socketPath. The connection inherits the
// deadline of ctx.
func GetUnixSocketConnection(ctx context.Context, socketPath string) (net.Conn, func(), error) {
	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%w: command socket not found at %s", errs.ErrHyprNotRunning, socketPath)
	}

	d := &net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("cant set socket deadline: %w", err)
		}
	}

	return conn, func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Debug("Failed to close connection")
		}
	}, nil
}

type SocketJSONResponse interface {
	Validate() error
}

// SyncQuerySocket sends command and decodes the whole response as T.
func SyncQuerySocket[T SocketJSONResponse](conn net.Conn, command string) (T, error) {
	var zero T

	if _, err := conn.Write([]byte(command)); err != nil {
		return zero, fmt.Errorf("failed to send command %s: %w", command, err)
	}

	response, err := io.ReadAll(conn)
	if err != nil {
		return zero, fmt.Errorf("failed to read response: %w", err)
	}

	logrus.WithFields(logrus.Fields{"command": command, "bytes": len(response)}).Debug("ipc response")

	var res T
	if err := utils.UnmarshalResponse(response, &res); err != nil {
		return zero, fmt.Errorf("failed to parse response: %w", err)
	}

	if err := res.Validate(); err != nil {
		return zero, fmt.Errorf("failed to validate response: %w", err)
	}

	return res, nil
}
