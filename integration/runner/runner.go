package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/jwebster45206/schematic-engine/internal/report"
	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/internal/storage"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner builds schematics and checks the results against test suites
type Runner struct {
	Files             storage.Schematics
	CatalogPath       string
	Store             storage.Storage // Optional, persists unlocks
	Log               *slog.Logger
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a runner reading schematics from dir
func NewRunner(dir string, log *slog.Logger) *Runner {
	return &Runner{
		Files:             storage.NewFileStorage(dir, log),
		Log:               log,
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite builds the suite's schematic and runs every expectation
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{Job: TestJob{Name: suite.Name, Suite: suite}}

	data, err := report.Load(ctx, r.Files, suite.Schematic)
	if err != nil {
		result.Error = fmt.Errorf("failed to load schematic: %w", err)
		return result, result.Error
	}

	rep, err := report.Build(ctx, data, report.Options{
		Instance:     report.InstanceName(suite.Schematic),
		CatalogPath:  r.CatalogPath,
		Seed:         suite.Seed,
		AbortOnError: suite.AbortOnError,
		Store:        r.Store,
		Log:          r.Log,
	})
	if err != nil {
		result.Error = fmt.Errorf("failed to build schematic: %w", err)
		return result, result.Error
	}
	result.Report = rep

	for _, c := range checks(suite.Expect) {
		err := c.run(rep)
		res := TestResult{TestName: suite.Name, Check: c.name, Success: err == nil, Error: err}
		result.Results = append(result.Results, res)
		r.logf("   %s: %v", c.name, res.Success)

		if err != nil {
			if result.Error == nil {
				result.Error = fmt.Errorf("check %s failed: %w", c.name, err)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger(format, args...)
	}
}

type check struct {
	name string
	run  func(*report.Report) error
}

func checks(e Expectations) []check {
	var cs []check

	if e.Built != nil {
		cs = append(cs, check{"built", func(r *report.Report) error {
			return equal(*e.Built, r.Result.Built())
		}})
	}
	if e.Failures != nil {
		cs = append(cs, check{"failures", func(r *report.Report) error {
			got := make([]int, 0, len(r.Result.Failures))
			for _, f := range r.Result.Failures {
				got = append(got, f.ObjectID)
			}
			want := slices.Clone(e.Failures)
			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(want, got) {
				return fmt.Errorf("expected failed ids %v, got %v", want, got)
			}
			return nil
		}})
	}
	if e.Warnings != nil {
		cs = append(cs, check{"warnings", func(r *report.Report) error {
			return equal(*e.Warnings, len(r.Warnings))
		}})
	}
	if e.Unlocks != nil {
		cs = append(cs, check{"unlocks", func(r *report.Report) error {
			return equal(*e.Unlocks, r.Unlocks.Len())
		}})
	}
	if e.Aborted != nil {
		cs = append(cs, check{"aborted", func(r *report.Report) error {
			return equal(*e.Aborted, r.Err != nil)
		}})
	}

	ids := make([]int, 0, len(e.Objects))
	for id := range e.Objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		oe := e.Objects[id]
		cs = append(cs, check{"object " + strconv.Itoa(id), func(r *report.Report) error {
			return checkObject(r, id, oe)
		}})
	}
	return cs
}

func checkObject(r *report.Report, id int, e ObjectExpectation) error {
	obj, ok := r.Result.Objects[id]
	if !ok {
		return errors.New("object was not built")
	}
	n := obj.(*scene.Node)

	if e.Kind != "" {
		kind := ""
		if c := n.Component(); c != nil {
			kind = c.Kind()
		}
		if err := equal(e.Kind, kind); err != nil {
			return fmt.Errorf("kind: %w", err)
		}
	}
	if e.Template != "" {
		if err := equal(e.Template, n.Template()); err != nil {
			return fmt.Errorf("template: %w", err)
		}
	}
	if e.Parent != nil {
		parent := ""
		if p := n.Parent(); p != nil {
			parent = p.Name()
		}
		if err := equal(*e.Parent, parent); err != nil {
			return fmt.Errorf("parent: %w", err)
		}
	}
	if e.Position != nil {
		if err := equal(*e.Position, n.Local().Position); err != nil {
			return fmt.Errorf("position: %w", err)
		}
	}
	if e.Items != nil {
		l, ok := n.Component().(*schematic.Locker)
		if !ok {
			return fmt.Errorf("expected a locker, got %T", n.Component())
		}
		var got []string
		for _, ch := range l.Chambers {
			for _, it := range ch.Items {
				got = append(got, fmt.Sprintf("%s x%d", it.Name, it.Count))
			}
		}
		if !slices.Equal(e.Items, got) {
			return fmt.Errorf("expected items %v, got %v", e.Items, got)
		}
	}
	return nil
}

func equal[T comparable](want, got T) error {
	if want != got {
		return fmt.Errorf("expected %v, got %v", want, got)
	}
	return nil
}
