// Package validate is the input boundary for HTTP requests. Everything past it
// may assume well-formed drafts and credentials.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mycelian/casefiles/internal/model"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("casestatus", func(fl validator.FieldLevel) bool {
		_, err := model.ParseStatus(fl.Field().String())
		return err == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// CreateRecordRequest is the body of POST /api/records.
type CreateRecordRequest struct {
	CriminalName         string `json:"criminalName" validate:"nonblank"`
	CrimeSceneArea       string `json:"crimeSceneArea" validate:"nonblank"`
	InvestigationProcess string `json:"investigationProcess" validate:"nonblank"`
	Status               string `json:"status" validate:"casestatus"`
	Category             string `json:"category" validate:"nonblank"`
}

// LoginRequest is the body of POST /api/session.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Struct validates s against its tags and reports the first failing field
// as a model.ValidationError.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationError("body", err.Error())
	}
	fe := verrs[0]
	return model.NewValidationError(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonblank":
		return "is required"
	case "casestatus":
		return fmt.Sprintf("must be one of %s", strings.Join(statusNames(), ", "))
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func statusNames() []string {
	var out []string
	for _, s := range model.Statuses() {
		out = append(out, fmt.Sprintf("%q", s.String()))
	}
	return out
}

// CreateRecord validates req and converts it to a draft. Field values are
// kept exactly as sent.
func CreateRecord(req CreateRecordRequest) (model.RecordDraft, error) {
	if err := Struct(req); err != nil {
		return model.RecordDraft{}, err
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return model.RecordDraft{}, err
	}
	return model.RecordDraft{
		CriminalName:         req.CriminalName,
		CrimeSceneArea:       req.CrimeSceneArea,
		InvestigationProcess: req.InvestigationProcess,
		Status:               status,
		Category:             req.Category,
	}, nil
}

func Login(req LoginRequest) error { return Struct(req) }

func NonEmpty(field, val string) error {
	if val == "" {
		return model.NewValidationError(field, "is required")
	}
	return nil
}
