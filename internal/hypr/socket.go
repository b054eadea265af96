package hypr

import "fmt"

func GetHyprSocket(xdgRuntimeDir, instanceSignature string) string {
	return fmt.Sprintf("%s/hypr/%s/.socket.sock", xdgRuntimeDir, instanceSignature)
}
