package record

import "errors"

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrKindMismatch     = errors.New("attribute kind mismatch")
	ErrDuplicateField   = errors.New("duplicate field")
	ErrEmptyFieldName   = errors.New("empty field name")
)
