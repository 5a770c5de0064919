package integrity

import (
	"errors"
	"fmt"
)

// Reason classifies why an operation was rejected.
type Reason int

const (
	ReasonMissingField Reason = iota + 1
	ReasonInvalidFormat
	ReasonLengthExceeded
	ReasonDuplicateKey
	ReasonReferentialViolation
	ReasonNotFound
	ReasonUnsupported
	ReasonStoreFailure
)

// GenericFailureMessage is the only text a store failure ever shows to a client.
const GenericFailureMessage = "An unexpected error occurred."

var (
	ErrMissingField         = errors.New("missing field")
	ErrInvalidFormat        = errors.New("invalid format")
	ErrLengthExceeded       = errors.New("length exceeded")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrReferentialViolation = errors.New("referential violation")
	ErrNotFound             = errors.New("not found")
	ErrUnsupported          = errors.New("unsupported operation")
	ErrStoreFailure         = errors.New("store failure")
)

var reasonErrors = map[Reason]error{
	ReasonMissingField:         ErrMissingField,
	ReasonInvalidFormat:        ErrInvalidFormat,
	ReasonLengthExceeded:       ErrLengthExceeded,
	ReasonDuplicateKey:         ErrDuplicateKey,
	ReasonReferentialViolation: ErrReferentialViolation,
	ReasonNotFound:             ErrNotFound,
	ReasonUnsupported:          ErrUnsupported,
	ReasonStoreFailure:         ErrStoreFailure,
}

func (r Reason) String() string {
	if err, ok := reasonErrors[r]; ok {
		return err.Error()
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Rejection is returned for every refused operation. Message is safe to show
// to the user verbatim; Err carries the underlying store error, if any.
type Rejection struct {
	Reason  Reason
	Field   string
	Message string
	Err     error
}

func (r *Rejection) Error() string {
	return r.Message
}

// Is matches the sentinel error of the rejection's reason.
func (r *Rejection) Is(target error) bool {
	return reasonErrors[r.Reason] == target
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func reject(reason Reason, field, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Field: field, Message: fmt.Sprintf(format, args...)}
}

// StoreFailure wraps a store error behind the generic failure message.
func StoreFailure(err error) *Rejection {
	return &Rejection{Reason: ReasonStoreFailure, Message: GenericFailureMessage, Err: err}
}

// AsRejection unwraps err into a Rejection. Errors that are not rejections are
// treated as store failures so their text never reaches the client.
func AsRejection(err error) *Rejection {
	if err == nil {
		return nil
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	return StoreFailure(err)
}
