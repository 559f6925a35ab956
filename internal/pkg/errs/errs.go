package errs

import (
	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches a failure kind to err. The kind becomes part of the unwrap
// chain, so callers branch on it with plain errors.Is; the cause keeps its
// message as a prefix and stays attached for verbose formatting.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.WithMessage(cr.WithSecondaryError(markErr, err), err.Error())
}
