package errs

import "errors"

var (
	ErrMissingConfig = errors.New("config is missing")
)

// NonFatalError is an error wrapper type that marks an error as
// reportable to the user without aborting the current operation.
//
// It is used when enabling a feature fails but the caller can
// carry on with the feature disabled.
type NonFatalError struct{ error }

func (e *NonFatalError) Error() string {
	return e.error.Error()
}

func WrapNonFatal(wrappedErr error) error {
	if wrappedErr == nil {
		return nil
	}
	return &NonFatalError{wrappedErr}
}

func (e *NonFatalError) Unwrap() error { return e.error }

// IsNonFatal reports whether err or any error it wraps is a NonFatalError.
func IsNonFatal(err error) bool {
	var nf *NonFatalError
	return errors.As(err, &nf)
}
