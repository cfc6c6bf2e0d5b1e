package importer

import "fmt"

// ProcessError is the first fatal error an Importer run returns: it names
// the stage that failed and wraps the
// underlying cause. Non-fatal anomalies never reach here — they go through
// the run's warn.Sink instead.
type ProcessError struct {
	Stage string
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("importer: %s: %v", e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
