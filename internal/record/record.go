// Package record loads, validates and serves the applicant's personal
// data. A record is loaded once per session and treated as immutable for
// the duration of a fill run; the matching engine only ever reads it.
package record

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/application-autofill/internal/schema"
)

// Address holds the postal address parts. Forms ask for them split out
// or as one line, so both views are served.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// OneLine joins the non-empty parts with ", " in postal order. The
// composite never invents separators for missing parts, so a record
// with only city and country renders "Springfield, USA".
func (a Address) OneLine() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.Zip, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// PersonalInfo is the identity and contact group.
type PersonalInfo struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"required"`
	Address   Address `json:"address,omitempty"`
	LinkedIn  string  `json:"linkedin,omitempty"`
	Website   string  `json:"website,omitempty"`
}

// Education is the most recent (or most relevant) qualification.
type Education struct {
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	University     string `json:"university,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// WorkAuthorization captures eligibility answers.
type WorkAuthorization struct {
	Country             string `json:"country,omitempty"`
	VisaStatus          string `json:"visa_status,omitempty"`
	RequiresSponsorship bool   `json:"requires_sponsorship"`
}

// Files points at the documents to upload. The paths are stored as
// given; existence is checked at render time so a stale cover letter
// does not block filling unrelated fields.
type Files struct {
	ResumePath      string `json:"resume_path" validate:"required"`
	CoverLetterPath string `json:"cover_letter_path,omitempty"`
	TranscriptPath  string `json:"transcript_path,omitempty"`
}

// Preferences are the negotiable answers.
type Preferences struct {
	SalaryExpectation string `json:"salary_expectation,omitempty"`
	StartDate         string `json:"start_date,omitempty"`
	RemoteWork        bool   `json:"remote_work"`
	WillingToRelocate bool   `json:"willing_to_relocate"`
}

// PersonalRecord is the complete personal data set, grouped the way the
// persisted JSON is grouped.
type PersonalRecord struct {
	PersonalInfo      PersonalInfo      `json:"personal_info" validate:"required"`
	Education         Education         `json:"education,omitempty"`
	WorkAuthorization WorkAuthorization `json:"work_authorization,omitempty"`
	Files             Files             `json:"files" validate:"required"`
	Preferences       Preferences       `json:"preferences,omitempty"`
}

// Validate checks the struct-level invariants. The JSON schema already
// rejected unknown attributes; this covers the value constraints.
func (r *PersonalRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FullName derives the composite display name.
func (r *PersonalRecord) FullName() string {
	return strings.TrimSpace(r.PersonalInfo.FirstName + " " + r.PersonalInfo.LastName)
}

// Value returns the string value for a scalar or composite attribute,
// and whether the record holds one. Boolean and file attributes are
// served by Bool and FilePath, not here.
func (r *PersonalRecord) Value(attr schema.Attribute) (string, bool) {
	var v string
	switch attr {
	case schema.FirstName:
		v = r.PersonalInfo.FirstName
	case schema.LastName:
		v = r.PersonalInfo.LastName
	case schema.FullName:
		v = r.FullName()
	case schema.Email:
		v = r.PersonalInfo.Email
	case schema.Phone:
		v = r.PersonalInfo.Phone
	case schema.Address:
		v = r.PersonalInfo.Address.OneLine()
	case schema.Street:
		v = r.PersonalInfo.Address.Street
	case schema.City:
		v = r.PersonalInfo.Address.City
	case schema.State:
		v = r.PersonalInfo.Address.State
	case schema.Zip:
		v = r.PersonalInfo.Address.Zip
	case schema.Country:
		v = r.PersonalInfo.Address.Country
	case schema.LinkedIn:
		v = r.PersonalInfo.LinkedIn
	case schema.Website:
		v = r.PersonalInfo.Website
	case schema.University:
		v = r.Education.University
	case schema.Degree:
		v = r.Education.Degree
	case schema.FieldOfStudy:
		v = r.Education.FieldOfStudy
	case schema.GraduationYear:
		v = r.Education.GraduationYear
	case schema.GPA:
		v = r.Education.GPA
	case schema.VisaStatus:
		v = r.WorkAuthorization.VisaStatus
	case schema.SalaryExpectation:
		v = r.Preferences.SalaryExpectation
	case schema.StartDate:
		v = r.Preferences.StartDate
	default:
		return "", false
	}
	return v, v != ""
}

// Bool returns the value of a boolean attribute and whether attr is
// boolean-typed at all.
func (r *PersonalRecord) Bool(attr schema.Attribute) (bool, bool) {
	switch attr {
	case schema.RequiresSponsorship:
		return r.WorkAuthorization.RequiresSponsorship, true
	case schema.RemoteWork:
		return r.Preferences.RemoteWork, true
	case schema.WillingToRelocate:
		return r.Preferences.WillingToRelocate, true
	default:
		return false, false
	}
}

// FilePath returns the stored path for a file attribute and whether the
// record holds one. The path is not checked for existence here.
func (r *PersonalRecord) FilePath(attr schema.Attribute) (string, bool) {
	var p string
	switch attr {
	case schema.Resume:
		p = r.Files.ResumePath
	case schema.CoverLetter:
		p = r.Files.CoverLetterPath
	case schema.Transcript:
		p = r.Files.TranscriptPath
	default:
		return "", false
	}
	return p, p != ""
}
