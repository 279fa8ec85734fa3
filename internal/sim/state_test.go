package sim

import (
	"testing"

	"github.com/tomz197/lakeside/internal/catalog"
)

func TestRunStateScoreFloorsAtZero(t *testing.T) {
	run := NewRunState(catalog.Level{Number: 1, StaminaMax: 3})
	run.Score = 10

	if got := run.AddScore(-25); got != -10 {
		t.Errorf("AddScore(-25) applied %d; want -10", got)
	}
	if run.Score != 0 {
		t.Errorf("Score = %d; want 0", run.Score)
	}
	if got := run.AddScore(7); got != 7 || run.Score != 7 {
		t.Errorf("AddScore(7) = %d, Score = %d; want 7, 7", got, run.Score)
	}
}

func TestRunStateSpendStamina(t *testing.T) {
	run := NewRunState(catalog.Level{Number: 1, StaminaMax: 2})

	for i := 0; i < 2; i++ {
		if !run.SpendStamina() {
			t.Fatalf("SpendStamina() #%d = false", i+1)
		}
	}
	if run.SpendStamina() {
		t.Error("SpendStamina() with no stamina = true")
	}
	if run.Stamina != 0 {
		t.Errorf("Stamina = %d; want 0", run.Stamina)
	}
}

func TestRunStateCatchCountsIsCopy(t *testing.T) {
	run := NewRunState(catalog.Level{Number: 1, StaminaMax: 1})
	run.RecordCatch("a")

	counts := run.CatchCounts()
	counts["a"] = 99
	if run.Caught["a"] != 1 {
		t.Errorf("Caught[a] = %d; want 1", run.Caught["a"])
	}
}
