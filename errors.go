package rapidbase64

import "github.com/mnightingale/rapidbase64/internal/codec"

var (
	ErrInvalidAlphabet    = codec.ErrInvalidAlphabet    // altchars present but not 2 bytes
	ErrInvalidArgument    = codec.ErrInvalidArgument    // text input that is not ASCII
	ErrIncorrectPadding   = codec.ErrIncorrectPadding   // input ends inside a group
	ErrInvalidCharacter   = codec.ErrInvalidCharacter   // validating mode only
	ErrUnsupportedVariant = codec.ErrUnsupportedVariant // SetCurrentPath with a variant not compiled in

	// ErrMalformed matches both ErrIncorrectPadding and ErrInvalidCharacter,
	// but never the argument errors.
	ErrMalformed = codec.ErrMalformed
)

// CorruptInputError is returned for malformed input. errors.Is matches it
// against its Kind and ErrMalformed.
type CorruptInputError = codec.CorruptInputError
