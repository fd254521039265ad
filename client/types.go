package client

// Status values accepted by CreateRecord.
const (
	StatusActive   = "Active"
	StatusClosed   = "Closed"
	StatusColdCase = "Cold Case"
)

// Summary task states.
const (
	SummaryIdle     = "idle"
	SummaryInFlight = "in_flight"
	SummaryDone     = "done"
	SummaryFailed   = "failed"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Record struct {
	ID                   string `json:"id"`
	CriminalName         string `json:"criminalName"`
	CrimeSceneArea       string `json:"crimeSceneArea"`
	InvestigationProcess string `json:"investigationProcess"`
	Status               string `json:"status"`
	DateCreated          string `json:"dateCreated"`
	Category             string `json:"category"`
}

// RecordDraft is the input of CreateRecord.
type RecordDraft struct {
	CriminalName         string `json:"criminalName"`
	CrimeSceneArea       string `json:"crimeSceneArea"`
	InvestigationProcess string `json:"investigationProcess"`
	Status               string `json:"status"`
	Category             string `json:"category"`
}

// CreateResult is a created record. Persisted is false when the service kept
// the record for its current process only.
type CreateResult struct {
	Record
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

type Stats struct {
	Active   int `json:"active"`
	Closed   int `json:"closed"`
	ColdCase int `json:"coldCase"`
	Total    int `json:"total"`
}

type ChartBar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type Dashboard struct {
	Stats  Stats      `json:"stats"`
	Chart  []ChartBar `json:"chart"`
	Recent []Record   `json:"recent"`
}

type SummaryTask struct {
	RecordID string `json:"recordId"`
	State    string `json:"state"`
	Text     string `json:"text,omitempty"`
}

// Finished reports whether the task has a result.
func (t SummaryTask) Finished() bool {
	return t.State == SummaryDone || t.State == SummaryFailed
}
