package testutil

import "testing"

// Given opens a scenario step. Steps nest, so a ledger scenario reads
// Given a case / When donors give / Then the total is exact.
func Given(t *testing.T, precondition string, step func(t *testing.T)) {
	t.Helper()
	scenarioStep(t, "Given", precondition, step)
}

func When(t *testing.T, action string, step func(t *testing.T)) {
	t.Helper()
	scenarioStep(t, "When", action, step)
}

func Then(t *testing.T, outcome string, step func(t *testing.T)) {
	t.Helper()
	scenarioStep(t, "Then", outcome, step)
}

func scenarioStep(t *testing.T, keyword, desc string, step func(t *testing.T)) {
	t.Helper()
	if !t.Run(keyword+" "+desc, step) {
		t.FailNow()
	}
}
