package translate

import "fmt"

// ContractViolationError is returned when the backend replies with a batch
// of a different length than the one sent. The batcher treats it like any
// other batch failure so item alignment is never corrupted.
type ContractViolationError struct {
	Sent     int
	Received int
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("translation backend returned %d items for a batch of %d", e.Received, e.Sent)
}
