package driver

import (
	"errors"
	"fmt"
	"time"

	"structura/internal/diag"
)

// Stage is one step of the pipeline, in execution order.
type Stage uint8

const (
	StageNone Stage = iota
	StageLex
	StageParse
	StageCheck
	StageIRGen
	StageOptimize
	StageEmit
)

var stageNames = [...]string{"none", "lex", "parse", "check", "irgen", "optimize", "emit"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", s)
}

// ParseStage accepts the names printed by Stage.String.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return StageNone, fmt.Errorf("unknown stage %q", name)
}

// CompileError wraps the error of the stage that aborted the pipeline.
type CompileError struct {
	Stage Stage
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Diagnostic returns the stage error's diagnostic.
func (e *CompileError) Diagnostic() diag.Diagnostic {
	var d diag.Diagnoser
	if errors.As(e.Err, &d) {
		return d.Diagnostic()
	}
	return diag.NewError(diag.UnknownCode, 0, sourceless, e.Err.Error())
}

// PhaseStatus reports whether a stage started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a stage boundary.
type PhaseEvent struct {
	Stage   Stage
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives stage boundaries of a single compilation.
type PhaseObserver func(PhaseEvent)
