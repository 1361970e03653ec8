package process

import "time"

// CreateInput carries the decoded fields for a new process. The transport
// layer is responsible for coercing wire values; by the time input reaches
// here every field is typed.
type CreateInput struct {
	Object          string
	Phase           string
	Location        Location
	EstimatedValue  float64
	ContractedValue float64
	ContractDate    string
	Attachments     []Attachment
}

// Update is a partial update. Nil pointer fields mean "unchanged".
// Attachments are always additive: they are appended to the existing list,
// never replace it.
type Update struct {
	Object          *string
	Phase           *string
	Location        *Location
	EstimatedValue  *float64
	ContractedValue *float64
	ContractDate    *string
	Attachments     []Attachment
}

// NewProcess builds a process record at creation time: both timelines are
// seeded with a single open interval starting at now.
func NewProcess(input CreateInput, now time.Time, nextID func() int) Process {
	attachments := input.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	return Process{
		ID:              nextID(),
		Object:          input.Object,
		Phase:           input.Phase,
		Location:        input.Location,
		EstimatedValue:  input.EstimatedValue,
		ContractedValue: input.ContractedValue,
		ContractDate:    input.ContractDate,
		CreationDate:    now,
		Attachments:     attachments,
		History: []HistoryEntry{
			{Phase: input.Phase, StartDate: now},
		},
		LocationHistory: []LocationEntry{
			{Sector: input.Location.Sector, Responsible: input.Location.Responsible, StartDate: now},
		},
	}
}

// ApplyUpdate merges upd into existing and returns the new record. When
// logHistory is set and the phase or location actually changes, the open
// interval on the corresponding timeline is closed at now and a new open
// entry appended. Existing entries are never removed or reordered. The
// inputs are not mutated; now is supplied by the caller so the result is
// deterministic.
func ApplyUpdate(existing Process, upd Update, logHistory bool, now time.Time) Process {
	out := existing.Clone()
	Normalize(&out)

	if logHistory && upd.Phase != nil && *upd.Phase != existing.Phase {
		closeHistory(out.History, now)
		out.History = append(out.History, HistoryEntry{Phase: *upd.Phase, StartDate: now})
	}

	// A phase change without an explicit new location leaves the location
	// timeline alone; a missing prior location compares unequal to any
	// concrete one, so legacy records still get an entry appended.
	if logHistory && upd.Location != nil && *upd.Location != existing.Location {
		closeLocationHistory(out.LocationHistory, now)
		out.LocationHistory = append(out.LocationHistory, LocationEntry{
			Sector:      upd.Location.Sector,
			Responsible: upd.Location.Responsible,
			StartDate:   now,
		})
	}

	if upd.Object != nil {
		out.Object = *upd.Object
	}
	if upd.Phase != nil {
		out.Phase = *upd.Phase
	}
	if upd.Location != nil {
		out.Location = *upd.Location
	}
	if upd.EstimatedValue != nil {
		out.EstimatedValue = *upd.EstimatedValue
	}
	if upd.ContractedValue != nil {
		out.ContractedValue = *upd.ContractedValue
	}
	if upd.ContractDate != nil {
		out.ContractDate = *upd.ContractDate
	}
	out.Attachments = append(out.Attachments, upd.Attachments...)

	// The ID is fixed at creation.
	out.ID = existing.ID
	return out
}

func closeHistory(entries []HistoryEntry, now time.Time) {
	if len(entries) == 0 {
		return
	}
	end := now
	entries[len(entries)-1].EndDate = &end
}

func closeLocationHistory(entries []LocationEntry, now time.Time) {
	if len(entries) == 0 {
		return
	}
	end := now
	entries[len(entries)-1].EndDate = &end
}
