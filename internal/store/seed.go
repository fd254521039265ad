package store

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/mycelian/casefiles/internal/model"
)

// Seed returns the two example records a fresh store starts from.
func Seed() []model.CrimeRecord {
	return []model.CrimeRecord{
		{
			ID:                   "1",
			CriminalName:         `Victor "The Viper" Rossi`,
			CrimeSceneArea:       "Downtown Financial District",
			InvestigationProcess: "Surveillance footage identified the suspect at 2:00 AM. Fingerprints matched database records from 2018. Apprehended in a safehouse on the outskirts.",
			Status:               model.StatusClosed,
			DateCreated:          date(2023, time.November, 12),
			Category:             "Theft",
		},
		{
			ID:                   "2",
			CriminalName:         "Unknown Subject (Phantom)",
			CrimeSceneArea:       "Eastside Industrial Park",
			InvestigationProcess: "Multiple break-ins with zero forensic evidence left behind. High-tech equipment used to bypass security. No leads for 6 months.",
			Status:               model.StatusColdCase,
			DateCreated:          date(2023, time.May, 20),
			Category:             "Espionage",
		},
	}
}

func date(y int, m time.Month, d int) strfmt.Date {
	return strfmt.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// calendarDate drops the time of day, keeping the UTC calendar date.
func calendarDate(t time.Time) strfmt.Date {
	u := t.UTC()
	return date(u.Year(), u.Month(), u.Day())
}
