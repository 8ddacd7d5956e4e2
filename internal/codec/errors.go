package codec

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidAlphabet    = errors.New("altchars must be exactly 2 bytes")
	ErrInvalidArgument    = errors.New("string argument should contain only ASCII characters")
	ErrIncorrectPadding   = errors.New("incorrect padding")
	ErrInvalidCharacter   = errors.New("non-base64 digit found")
	ErrUnsupportedVariant = errors.New("variant not compiled in")

	// ErrMalformed matches every error caused by the content of the input,
	// whether it is a padding or a character problem.
	ErrMalformed = errors.New("malformed base64 data")
)

// CorruptInputError reports malformed input and the offset where it was detected.
type CorruptInputError struct {
	Kind   error // ErrIncorrectPadding or ErrInvalidCharacter
	Offset int64
}

func (e *CorruptInputError) Error() string {
	return e.Kind.Error() + " at input byte " + strconv.FormatInt(e.Offset, 10)
}

func (e *CorruptInputError) Unwrap() []error {
	return []error{e.Kind, ErrMalformed}
}

func incorrectPadding(offset int) error {
	return &CorruptInputError{Kind: ErrIncorrectPadding, Offset: int64(offset)}
}

func invalidCharacter(offset int) error {
	return &CorruptInputError{Kind: ErrInvalidCharacter, Offset: int64(offset)}
}
