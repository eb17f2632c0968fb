package pipeline

import "fmt"

// Stage is a step of a pipeline run
type Stage string

const (
	StageResolving   Stage = "resolving"
	StageExtracting  Stage = "extracting"
	StageSummarizing Stage = "summarizing"
	StageWriting     Stage = "writing"
	StageDone        Stage = "done"
)

func (s Stage) String() string { return string(s) }

// StageError is the terminal failure of a run
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func failed(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
