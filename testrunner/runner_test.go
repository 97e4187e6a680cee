package testrunner

import "testing"

func TestFixtures(t *testing.T) {
	results, summary := Run(Config{Dir: "testdata"})

	if summary.Total == 0 {
		t.Fatal("no fixture cases discovered")
	}
	for _, r := range results {
		if r.Result == Fail || r.Result == Error {
			t.Errorf("%s %s/%s: %s", r.Result, r.File, r.Name, r.Message)
		}
	}
	if summary.Passed != summary.Total-summary.Skipped {
		t.Errorf("summary mismatch: %+v", summary)
	}
}

func TestFilter(t *testing.T) {
	_, summary := Run(Config{Dir: "testdata", Filter: "arithmetic"})
	if summary.Total != 1 {
		t.Fatalf("filter matched %d cases, want 1", summary.Total)
	}
}

func TestMissingFixture(t *testing.T) {
	results, _ := Run(Config{Dir: "testdata", Filter: "no-such-case"})
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
