package domain

import "fmt"

// ResolutionError signals that a shop or one of its required
// sub-resources could not be resolved. Fatal to the request.
type ResolutionError struct {
	Resource string
	Message  string
}

func (e *ResolutionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s resolution failed: %s", e.Resource, e.Message)
	}
	return fmt.Sprintf("%s resolution failed", e.Resource)
}

// RemoteRejectionError is raised when the remote commerce API answers
// with a non-2xx status. One instance per call site, tagged with the
// operation name.
type RemoteRejectionError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("%s rejected with status %d: %s", e.Op, e.Status, e.Message)
}

// TransportError covers network-level failures before any protocol
// response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports a missing or inconsistent input parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// AuthorizationError maps to an unauthorized response.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }
