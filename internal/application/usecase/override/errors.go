package override

import "fmt"

// DecodeError reports a storage slot whose content is not a valid encoded
// collection.
type DecodeError struct {
	Slot string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode slot %s: %v", e.Slot, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
