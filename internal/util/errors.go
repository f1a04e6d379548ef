package util

import (
	"errors"
	"strings"
)

// ErrPublic is an error whose message can be shown as-is to an end user.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}

func (e ErrPublic) Is(v error) bool {
	_, ok := v.(ErrPublic)
	return ok
}

// PublicMessage returns the message of the first ErrPublic wrapped by err.
func PublicMessage(err error) (string, bool) {
	var pub ErrPublic
	if !errors.As(err, &pub) {
		return "", false
	}

	return pub.Error(), true
}

func ConcatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err.Error())
		}
	}

	if len(filtered) == 0 {
		return nil
	}

	return errors.New(strings.Join(filtered, "; "))
}
