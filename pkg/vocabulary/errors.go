package vocabulary

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidText marks empty or oversize word input.
	ErrInvalidText = errors.New("vocabulary: invalid word text")
	// ErrStorage marks a failure of the underlying store.
	ErrStorage = errors.New("vocabulary: storage failure")
)

func storageFault(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
