package remote

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDisconnected marks transport-level failures: the websocket dropped or
// was never established. The session wraps every such failure with it.
var ErrDisconnected = errors.New("session disconnected")

// BusinessError is an operation the server received and rejected, such as
// insufficient funds or an invalid order. These are never retried.
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// IsSessionLoss reports whether err signals a lost or invalid remote
// session. Only these failures are worth a reconnect-and-retry; everything
// else propagates to the caller.
func IsSessionLoss(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDisconnected) {
		return true
	}

	var be *BusinessError
	if errors.As(err, &be) {
		// The server reports the condition as either "InvalidSession" or
		// "invalid session" depending on the code path.
		msg := strings.ReplaceAll(strings.ToLower(be.Message), " ", "")
		return strings.Contains(msg, "disconnected") || strings.Contains(msg, "invalidsession")
	}
	return false
}
