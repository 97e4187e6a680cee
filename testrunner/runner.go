// Package testrunner executes YAML conformance fixtures: each file under
// the fixture directory lists Mew sources with the output or error they
// must produce.
package testrunner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mewlang/mew/interpreter"
)

type Result int

const (
	Pass Result = iota
	Fail
	Skip
	Error
)

func (r Result) String() string {
	switch r {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Case is one fixture entry. Want is compared against the trimmed printed
// output; WantErr is a substring the error message must contain. Skip
// names a reason the case is excluded.
type Case struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Want    string `yaml:"want"`
	WantErr string `yaml:"wantErr"`
	Skip    string `yaml:"skip"`
}

type Fixture struct {
	Cases []Case `yaml:"cases"`
}

type TestResult struct {
	File    string
	Name    string
	Result  Result
	Message string
	Elapsed time.Duration
}

type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

type Config struct {
	Dir     string
	Filter  string
	Verbose bool
}

// Run loads every fixture file under cfg.Dir and executes its cases.
func Run(cfg Config) ([]TestResult, Summary) {
	var files []string
	filepath.Walk(cfg.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		files = append(files, path)
		return nil
	})

	start := time.Now()
	var results []TestResult
	var summary Summary

	for _, path := range files {
		rel, _ := filepath.Rel(cfg.Dir, path)
		for _, tr := range runFixture(path, rel, cfg.Filter) {
			results = append(results, tr)
			summary.Total++
			switch tr.Result {
			case Pass:
				summary.Passed++
			case Fail:
				summary.Failed++
			case Skip:
				summary.Skipped++
			case Error:
				summary.Errors++
			}

			if cfg.Verbose {
				msg := ""
				if tr.Message != "" {
					msg = " " + tr.Message
				}
				fmt.Printf("%s %s/%s%s\n", tr.Result, rel, tr.Name, msg)
			}
		}
	}

	summary.Elapsed = time.Since(start)
	return results, summary
}

func runFixture(path, rel, filter string) []TestResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return []TestResult{{File: rel, Result: Error, Message: "read error: " + err.Error()}}
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return []TestResult{{File: rel, Result: Error, Message: "yaml error: " + err.Error()}}
	}

	var results []TestResult
	for _, c := range fixture.Cases {
		if filter != "" && !strings.Contains(c.Name, filter) {
			continue
		}
		results = append(results, runCase(rel, c))
	}
	return results
}

func runCase(rel string, c Case) TestResult {
	if c.Skip != "" {
		return TestResult{File: rel, Name: c.Name, Result: Skip, Message: c.Skip}
	}

	start := time.Now()

	type evalResult struct {
		output string
		err    error
	}
	resultCh := make(chan evalResult, 1)
	go func() {
		var buf bytes.Buffer
		interp := interpreter.NewWithOutput(&buf)
		_, err := interp.Run(c.Source)
		resultCh <- evalResult{output: buf.String(), err: err}
	}()

	var res evalResult
	select {
	case res = <-resultCh:
	case <-time.After(5 * time.Second):
		return TestResult{File: rel, Name: c.Name, Result: Error,
			Message: "timeout (5s)", Elapsed: time.Since(start)}
	}
	elapsed := time.Since(start)

	if c.WantErr != "" {
		if res.err == nil {
			return TestResult{File: rel, Name: c.Name, Result: Fail,
				Message: fmt.Sprintf("expected error containing %q", c.WantErr), Elapsed: elapsed}
		}
		if !strings.Contains(res.err.Error(), c.WantErr) {
			return TestResult{File: rel, Name: c.Name, Result: Fail,
				Message: fmt.Sprintf("error %q does not contain %q", res.err, c.WantErr), Elapsed: elapsed}
		}
		return TestResult{File: rel, Name: c.Name, Result: Pass, Elapsed: elapsed}
	}

	if res.err != nil {
		return TestResult{File: rel, Name: c.Name, Result: Fail,
			Message: res.err.Error(), Elapsed: elapsed}
	}

	got := strings.TrimRight(res.output, "\n")
	want := strings.TrimRight(c.Want, "\n")
	if got != want {
		return TestResult{File: rel, Name: c.Name, Result: Fail,
			Message: fmt.Sprintf("output %q, want %q", got, want), Elapsed: elapsed}
	}
	return TestResult{File: rel, Name: c.Name, Result: Pass, Elapsed: elapsed}
}
