// Package repair reconciles drifted history timestamps with their
// authoritative source fields.
package repair

import (
	"time"

	"github.com/ganot/procflow/internal/domain/process"
)

const contractDateLayout = "2006-01-02"

// ContractDates rewrites the terminal phase-history entry of every
// contracted process whose start date disagrees with the process's contract
// date. The contract date is a plain calendar date, so it is anchored to
// midday UTC; midnight anchoring shifts the displayed date in western
// timezones. Mutates procs in place and returns the number of corrected
// entries. Re-running the pass on corrected data is a no-op.
func ContractDates(procs []process.Process) int {
	corrected := 0
	for i := range procs {
		p := &procs[i]
		if p.Phase != process.PhaseContracted || p.ContractDate == "" || len(p.History) == 0 {
			continue
		}

		canonical, err := CanonicalContractTime(p.ContractDate)
		if err != nil {
			continue
		}

		last := &p.History[len(p.History)-1]
		if last.Phase == process.PhaseContracted && !last.StartDate.Equal(canonical) {
			last.StartDate = canonical
			corrected++
		}
	}
	return corrected
}

// CanonicalContractTime parses a YYYY-MM-DD contract date and anchors it to
// 12:00 UTC of that day.
func CanonicalContractTime(date string) (time.Time, error) {
	day, err := time.ParseInLocation(contractDateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(12 * time.Hour), nil
}
