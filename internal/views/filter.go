package views

import (
	"strings"

	"github.com/mycelian/casefiles/internal/model"
)

// Filter keeps records whose criminal name or crime scene area contains query,
// ignoring case. An empty query keeps everything. Input order is preserved.
func Filter(records []model.CrimeRecord, query string) []model.CrimeRecord {
	q := strings.ToLower(query)
	out := make([]model.CrimeRecord, 0, len(records))
	for _, r := range records {
		if q == "" ||
			strings.Contains(strings.ToLower(r.CriminalName), q) ||
			strings.Contains(strings.ToLower(r.CrimeSceneArea), q) {
			out = append(out, r)
		}
	}
	return out
}
