package repair_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/procflow/internal/domain/process"
	"github.com/ganot/procflow/internal/domain/repair"
)

func contracted(contractDate string, start time.Time) process.Process {
	return process.Process{
		ID:           1,
		Phase:        process.PhaseContracted,
		ContractDate: contractDate,
		History: []process.HistoryEntry{
			{Phase: "Draft", StartDate: start.Add(-48 * time.Hour)},
			{Phase: process.PhaseContracted, StartDate: start},
		},
	}
}

func TestContractDates_RewritesDriftedStart(t *testing.T) {
	// Midnight-UTC parsing shifted the start onto the previous calendar day
	// in western timezones; the canonical anchor is midday UTC.
	drifted := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)
	procs := []process.Process{contracted("2024-03-15", drifted)}

	corrected := repair.ContractDates(procs)

	require.Equal(t, 1, corrected)
	want := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	last := procs[0].History[len(procs[0].History)-1]
	require.Equal(t, want, last.StartDate)
	require.Equal(t, process.PhaseContracted, last.Phase)

	// Earlier entries are untouched.
	require.Equal(t, "Draft", procs[0].History[0].Phase)
}

func TestContractDates_Idempotent(t *testing.T) {
	drifted := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)
	procs := []process.Process{contracted("2024-03-15", drifted)}

	require.Equal(t, 1, repair.ContractDates(procs))

	before := append([]process.Process(nil), procs...)
	require.Equal(t, 0, repair.ContractDates(procs))
	require.Equal(t, before, procs)
}

func TestContractDates_SkipsNonTargets(t *testing.T) {
	drifted := time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)

	wrongPhase := contracted("2024-03-15", drifted)
	wrongPhase.Phase = "In Progress"

	noDate := contracted("", drifted)

	emptyHistory := contracted("2024-03-15", drifted)
	emptyHistory.History = nil

	// Current phase is Contracted but the terminal entry is not: the open
	// entry belongs to a different phase and must not be rewritten.
	terminalMismatch := contracted("2024-03-15", drifted)
	terminalMismatch.History = []process.HistoryEntry{
		{Phase: process.PhaseContracted, StartDate: drifted},
		{Phase: "In Progress", StartDate: drifted.Add(time.Hour)},
	}

	malformedDate := contracted("15/03/2024", drifted)

	procs := []process.Process{wrongPhase, noDate, emptyHistory, terminalMismatch, malformedDate}
	require.Equal(t, 0, repair.ContractDates(procs))
}

func TestContractDates_AlreadyCanonical(t *testing.T) {
	canonical := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	procs := []process.Process{contracted("2024-03-15", canonical)}
	require.Equal(t, 0, repair.ContractDates(procs))
}

func TestCanonicalContractTime(t *testing.T) {
	got, err := repair.CanonicalContractTime("2024-03-15")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), got)

	_, err = repair.CanonicalContractTime("not-a-date")
	require.Error(t, err)
}
