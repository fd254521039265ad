package model

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/strfmt"
)

// CaseStatus is the lifecycle label of a case file. The zero value is not a
// valid status, so an unset status never slips through as "Active".
type CaseStatus int

const (
	StatusUnknown CaseStatus = iota
	StatusActive
	StatusClosed
	StatusColdCase
)

// Statuses lists every valid status in declaration order.
func Statuses() []CaseStatus {
	return []CaseStatus{StatusActive, StatusClosed, StatusColdCase}
}

// String returns the display form, which is also the serialized form.
func (s CaseStatus) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusClosed:
		return "Closed"
	case StatusColdCase:
		return "Cold Case"
	default:
		return fmt.Sprintf("CaseStatus(%d)", int(s))
	}
}

// Valid reports whether s is one of the three defined statuses.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusColdCase:
		return true
	default:
		return false
	}
}

// ParseStatus maps a display string back to its status. Matching is exact.
func ParseStatus(v string) (CaseStatus, error) {
	for _, s := range Statuses() {
		if s.String() == v {
			return s, nil
		}
	}
	return StatusUnknown, NewValidationError("status", fmt.Sprintf("unknown status %q; expected Active, Closed or Cold Case", v))
}

func (s CaseStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal status: %s is not a valid status", s)
	}
	return json.Marshal(s.String())
}

func (s *CaseStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	parsed, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CrimeRecord is one case file. Only the store assigns ID and DateCreated.
type CrimeRecord struct {
	ID                   string      `json:"id"`
	CriminalName         string      `json:"criminalName"`
	CrimeSceneArea       string      `json:"crimeSceneArea"`
	InvestigationProcess string      `json:"investigationProcess"`
	Status               CaseStatus  `json:"status"`
	DateCreated          strfmt.Date `json:"dateCreated"`
	Category             string      `json:"category"`
}

// RecordDraft carries the user-supplied fields of a new record.
type RecordDraft struct {
	CriminalName         string
	CrimeSceneArea       string
	InvestigationProcess string
	Status               CaseStatus
	Category             string
}

// Role is the label attached to a session identity. Both roles have the same access.
type Role string

const (
	RoleAgent Role = "Agent"
	RoleAdmin Role = "Admin"
)

// User is an authenticated session identity. It is never persisted.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
