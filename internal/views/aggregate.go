// Package views derives read-only projections from a record snapshot.
// Every function here is pure: same snapshot in, same view out.
package views

import "github.com/mycelian/casefiles/internal/model"

// RecentLimit is how many records the dashboard lists.
const RecentLimit = 5

// Stats counts records per status.
type Stats struct {
	Active   int `json:"active"`
	Closed   int `json:"closed"`
	ColdCase int `json:"coldCase"`
	Total    int `json:"total"`
}

// ChartBar is one bar of the dashboard chart.
type ChartBar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Dashboard bundles everything the dashboard view shows.
type Dashboard struct {
	Stats  Stats               `json:"stats"`
	Chart  []ChartBar          `json:"chart"`
	Recent []model.CrimeRecord `json:"recent"`
}

// Aggregate counts records by exact status.
func Aggregate(records []model.CrimeRecord) Stats {
	var st Stats
	for _, r := range records {
		switch r.Status {
		case model.StatusActive:
			st.Active++
		case model.StatusClosed:
			st.Closed++
		case model.StatusColdCase:
			st.ColdCase++
		}
	}
	st.Total = len(records)
	return st
}

// Breakdown returns the chart bars in fixed order: Closed, Cold Case, Active.
func Breakdown(st Stats) []ChartBar {
	return []ChartBar{
		{Label: model.StatusClosed.String(), Count: st.Closed, Color: "#10b981"},
		{Label: model.StatusColdCase.String(), Count: st.ColdCase, Color: "#6366f1"},
		{Label: model.StatusActive.String(), Count: st.Active, Color: "#f59e0b"},
	}
}

// Recent returns up to n records from the front of the snapshot.
func Recent(records []model.CrimeRecord, n int) []model.CrimeRecord {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]model.CrimeRecord, n)
	copy(out, records[:n])
	return out
}

// BuildDashboard computes stats, chart and recent records for a snapshot.
func BuildDashboard(records []model.CrimeRecord) Dashboard {
	st := Aggregate(records)
	return Dashboard{
		Stats:  st,
		Chart:  Breakdown(st),
		Recent: Recent(records, RecentLimit),
	}
}
