package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/mycelian/casefiles/internal/model"
)

func validRequest() CreateRecordRequest {
	return CreateRecordRequest{
		CriminalName:         "Jane Doe",
		CrimeSceneArea:       "Harbor",
		InvestigationProcess: "Ongoing surveillance.",
		Status:               "Active",
		Category:             "Fraud",
	}
}

func TestCreateRecord(t *testing.T) {
	tests := []struct {
		name      string
		mut       func(*CreateRecordRequest)
		wantField string
	}{
		{name: "valid"},
		{name: "cold case", mut: func(r *CreateRecordRequest) { r.Status = "Cold Case" }},
		{name: "missing name", mut: func(r *CreateRecordRequest) { r.CriminalName = "" }, wantField: "criminalName"},
		{name: "blank area", mut: func(r *CreateRecordRequest) { r.CrimeSceneArea = "   " }, wantField: "crimeSceneArea"},
		{name: "missing process", mut: func(r *CreateRecordRequest) { r.InvestigationProcess = "\t\n" }, wantField: "investigationProcess"},
		{name: "missing category", mut: func(r *CreateRecordRequest) { r.Category = "" }, wantField: "category"},
		{name: "missing status", mut: func(r *CreateRecordRequest) { r.Status = "" }, wantField: "status"},
		{name: "unknown status", mut: func(r *CreateRecordRequest) { r.Status = "Pending" }, wantField: "status"},
		{name: "status is case sensitive", mut: func(r *CreateRecordRequest) { r.Status = "active" }, wantField: "status"},
		{name: "ColdCase spelling", mut: func(r *CreateRecordRequest) { r.Status = "ColdCase" }, wantField: "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			if tt.mut != nil {
				tt.mut(&req)
			}
			draft, err := CreateRecord(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if draft.CriminalName != req.CriminalName || !draft.Status.Valid() {
					t.Fatalf("draft not populated: %+v", draft)
				}
				return
			}
			var ve model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Fatalf("expected field %s, got %s", tt.wantField, ve.Field)
			}
		})
	}
}

func TestCreateRecord_KeepsWhitespaceInValues(t *testing.T) {
	req := validRequest()
	req.CriminalName = "  Jane Doe "
	draft, err := CreateRecord(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.CriminalName != "  Jane Doe " {
		t.Fatalf("value was altered: %q", draft.CriminalName)
	}
}

func TestLogin(t *testing.T) {
	if err := Login(LoginRequest{Username: "agent", Password: "agent"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Login(LoginRequest{Username: "agent"})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNonEmpty(t *testing.T) {
	if err := NonEmpty("recordId", ""); err == nil {
		t.Fatalf("expected error")
	}
	if err := NonEmpty("recordId", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an empty tag")
		}
	}()
	mustRegister("", func(validator.FieldLevel) bool { return true })
}
