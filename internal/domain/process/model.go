package process

import "time"

// PhaseContracted is the phase whose history entries are reconciled against
// the process's contract date. Phases are otherwise an open set of labels.
const PhaseContracted = "Contracted"

// Location identifies where a process currently sits: the office sector
// holding it and the person answering for it.
type Location struct {
	Sector      string `json:"sector"`
	Responsible string `json:"responsible"`
}

// HistoryEntry is one interval on the phase timeline. EndDate is nil while
// the interval is open; at most one entry per process is open, and it is
// always the last one.
type HistoryEntry struct {
	Phase     string     `json:"phase"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// LocationEntry is one interval on the location timeline, with the same
// open-interval rule as HistoryEntry.
type LocationEntry struct {
	Sector      string     `json:"sector"`
	Responsible string     `json:"responsible"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Attachment references one stored upload.
type Attachment struct {
	StoredName   string `json:"storedName"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
}

// Process is a procurement process record. History and LocationHistory are
// append-only: entries are never removed or reordered, only the open entry's
// EndDate is closed (and a terminal StartDate corrected by the repair pass).
type Process struct {
	ID              int             `json:"id"`
	Object          string          `json:"object"`
	Phase           string          `json:"phase"`
	Location        Location        `json:"location"`
	EstimatedValue  float64         `json:"estimatedValue"`
	ContractedValue float64         `json:"contractedValue"`
	ContractDate    string          `json:"contractDate,omitempty"`
	CreationDate    time.Time       `json:"creationDate"`
	Attachments     []Attachment    `json:"attachments"`
	History         []HistoryEntry  `json:"history"`
	LocationHistory []LocationEntry `json:"locationHistory"`
}

// Normalize heals records loaded from legacy documents: nil slices become
// empty ones so the engine can assume well-formed input. Stores call this
// once at load time.
func Normalize(p *Process) {
	if p.Attachments == nil {
		p.Attachments = []Attachment{}
	}
	if p.History == nil {
		p.History = []HistoryEntry{}
	}
	if p.LocationHistory == nil {
		p.LocationHistory = []LocationEntry{}
	}
}

// Clone returns a copy of p whose slices do not alias the original.
func (p Process) Clone() Process {
	out := p
	out.Attachments = append([]Attachment(nil), p.Attachments...)
	out.History = append([]HistoryEntry(nil), p.History...)
	out.LocationHistory = append([]LocationEntry(nil), p.LocationHistory...)
	return out
}
