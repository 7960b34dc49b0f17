package scraper

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindLaunch        ErrorKind = "launch"
	KindNavigation    ErrorKind = "navigation"
	KindInputNotFound ErrorKind = "input_not_found"
	KindTimeout       ErrorKind = "timeout"
	KindBlocked       ErrorKind = "blocked"
	KindExtraction    ErrorKind = "extraction"
	KindCanceled      ErrorKind = "canceled"
)

// FetchError is the error carried by a failed Result.
type FetchError struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of the first FetchError in err's chain, or
// KindNone if there is none.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNone
}
