package runner

import (
	"time"

	"github.com/jwebster45206/schematic-engine/internal/report"
	"github.com/jwebster45206/schematic-engine/pkg/geom"
)

// TestSuite defines one schematic build and what it must produce.
// Can either be a regular case or a suite that references other Cases.
type TestSuite struct {
	Name         string       `json:"name"`
	Schematic    string       `json:"schematic,omitempty"` // Relative to the schematics directory
	Seed         uint64       `json:"seed,omitempty"`
	AbortOnError bool         `json:"abort_on_error,omitempty"`
	Expect       Expectations `json:"expect"`
	Cases        []string     `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// Expectations defines what to check after the build
type Expectations struct {
	Built    *int  `json:"built,omitempty"`
	Failures []int `json:"failures,omitempty"` // Failed object ids (order independent)
	Warnings *int  `json:"warnings,omitempty"`
	Unlocks  *int  `json:"unlocks,omitempty"`
	Aborted  *bool `json:"aborted,omitempty"`

	// Objects maps object ids to the state their built object must have
	Objects map[int]ObjectExpectation `json:"objects,omitempty"`
}

type ObjectExpectation struct {
	Kind     string        `json:"kind,omitempty"`
	Template string        `json:"template,omitempty"`
	Parent   *string       `json:"parent,omitempty"` // Parent object name, empty for none
	Position *geom.Vector3 `json:"position,omitempty"`
	Items    []string      `json:"items,omitempty"` // Locker contents as "Name xCount"
}

// TestResult contains the outcome of one check
type TestResult struct {
	TestName string
	Check    string
	Success  bool
	Error    error
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Report   *report.Report
	Results  []TestResult
	Duration time.Duration
	Error    error
}
