package backend

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	errRejected  = errors.New("backend: request rejected")
	errNoSession = errors.New("backend: empty session in response")
)

// ErrRemoteCall is returned when a call to the backend fails, either in
// transport or because the backend answered with a failed result.
type ErrRemoteCall struct {
	Method string
	Err    error
}

func (e ErrRemoteCall) Error() string {
	return fmt.Sprintf("remote call %s failed: %v", e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e ErrRemoteCall) Unwrap() error {
	return e.Err
}

// IsErrRemoteCall returns true if the cause of e is ErrRemoteCall.
func IsErrRemoteCall(e error) bool {
	_, ok := errors.Cause(e).(ErrRemoteCall)
	return ok
}

func rejected(exceptions []string) error {
	if len(exceptions) == 0 {
		return errRejected
	}
	return errors.Wrap(errRejected, strings.Join(exceptions, "; "))
}
