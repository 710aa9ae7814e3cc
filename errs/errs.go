package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUsage          = errors.New("usage error")
	ErrConfig         = errors.New("invalid configuration")
	ErrRemoteRejected = errors.New("remote rejected trigger")
	ErrTransport      = errors.New("transport fault")
)

type UsageError struct{ err error }

func (e *UsageError) Error() string        { return e.err.Error() }
func (e *UsageError) Unwrap() error        { return e.err }
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

func Usagef(format string, args ...any) error {
	return &UsageError{err: fmt.Errorf(format, args...)}
}

type ConfigError struct{ err error }

func (e *ConfigError) Error() string        { return e.err.Error() }
func (e *ConfigError) Unwrap() error        { return e.err }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func Config(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{err: err}
}

func Configf(format string, args ...any) error {
	return &ConfigError{err: fmt.Errorf(format, args...)}
}

// RemoteRejectionError is returned when Jenkins answered the trigger request
// with a status other than 200 or 201. Body is the raw response body.
type RemoteRejectionError struct {
	StatusCode int
	Body       string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("trigger rejected with status code %d", e.StatusCode)
}
func (e *RemoteRejectionError) Is(target error) bool { return target == ErrRemoteRejected }

// TransportFaultError is returned when the request never produced a response.
type TransportFaultError struct{ err error }

func (e *TransportFaultError) Error() string        { return e.err.Error() }
func (e *TransportFaultError) Unwrap() error        { return e.err }
func (e *TransportFaultError) Is(target error) bool { return target == ErrTransport }

func TransportFault(err error) error {
	if err == nil {
		return nil
	}
	return &TransportFaultError{err: err}
}
