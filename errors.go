package hashbag

import (
	"errors"
	"fmt"
)

// Errors returned by Map.
var (
	ErrInvalidKeyType   = errors.New("invalid key type")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrOddArguments     = errors.New("odd number of arguments")
	ErrKeyNotFound      = errors.New("key not found")
	ErrUnsupported      = errors.New("unsupported operation")
)

func invalidKeyError(key any) error {
	return fmt.Errorf("%w: can't convert %T into string", ErrInvalidKeyType, key)
}
