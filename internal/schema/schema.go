// Package schema defines the closed vocabulary of personal-data attributes
// the matching engine is allowed to resolve to. Every other package refers to
// attributes through this package; names outside the catalog are rejected at
// record load time.
package schema

// Attribute names one slot in the personal-data record.
type Attribute string

// Scalar contact and identity attributes.
const (
	FirstName Attribute = "first_name"
	LastName  Attribute = "last_name"
	FullName  Attribute = "full_name"
	Email     Attribute = "email"
	Phone     Attribute = "phone"
	LinkedIn  Attribute = "linkedin"
	Website   Attribute = "website"
)

// Address attributes. Address is the composite single-line form; the parts
// are addressable on their own for forms that split them out.
const (
	Address Attribute = "address"
	Street  Attribute = "street"
	City    Attribute = "city"
	State   Attribute = "state"
	Zip     Attribute = "zip"
	Country Attribute = "country"
)

// Education attributes.
const (
	University     Attribute = "university"
	Degree         Attribute = "degree"
	FieldOfStudy   Attribute = "field_of_study"
	GraduationYear Attribute = "graduation_year"
	GPA            Attribute = "gpa"
)

// Work authorization and preference attributes.
const (
	VisaStatus          Attribute = "visa_status"
	RequiresSponsorship Attribute = "requires_sponsorship"
	SalaryExpectation   Attribute = "salary_expectation"
	StartDate           Attribute = "start_date"
	RemoteWork          Attribute = "remote_work"
	WillingToRelocate   Attribute = "willing_to_relocate"
)

// File attributes resolve to paths of documents to upload.
const (
	Resume      Attribute = "resume"
	CoverLetter Attribute = "cover_letter"
	Transcript  Attribute = "transcript"
)

// ValueKind classifies how an attribute's value is produced and injected.
type ValueKind string

const (
	// KindScalar is a plain string value stored verbatim in the record.
	KindScalar ValueKind = "scalar"
	// KindComposite is derived from several record fields (full_name, address).
	KindComposite ValueKind = "composite"
	// KindFile is a path to a document on disk.
	KindFile ValueKind = "file"
	// KindBoolean is a yes/no preference.
	KindBoolean ValueKind = "boolean"
)

// ControlClass mirrors the form-control kinds an attribute is expected to
// land on. Declared here (rather than importing internal/types) so the
// vocabulary stays dependency-free.
type ControlClass string

const (
	ClassText     ControlClass = "text"
	ClassTextarea ControlClass = "textarea"
	ClassSelect   ControlClass = "select"
	ClassCheckbox ControlClass = "checkbox"
	ClassRadio    ControlClass = "radio"
	ClassFile     ControlClass = "file"
)

// Spec describes one attribute: its value kind and the control kinds it is
// expected to be written into. A control outside ExpectedControls does not
// disqualify a match; the rule matcher lowers confidence and the resolver
// decides.
type Spec struct {
	Name             Attribute
	Kind             ValueKind
	ExpectedControls []ControlClass
}

var textControls = []ControlClass{ClassText, ClassTextarea, ClassSelect, ClassRadio}
var choiceControls = []ControlClass{ClassCheckbox, ClassRadio, ClassSelect}
var fileControls = []ControlClass{ClassFile}

// catalog is the closed schema, in the stable order used for prompts and
// deterministic listings.
var catalog = []Spec{
	{FirstName, KindScalar, textControls},
	{LastName, KindScalar, textControls},
	{FullName, KindComposite, textControls},
	{Email, KindScalar, textControls},
	{Phone, KindScalar, textControls},
	{Address, KindComposite, textControls},
	{Street, KindScalar, textControls},
	{City, KindScalar, textControls},
	{State, KindScalar, textControls},
	{Zip, KindScalar, textControls},
	{Country, KindScalar, textControls},
	{LinkedIn, KindScalar, textControls},
	{Website, KindScalar, textControls},
	{University, KindScalar, textControls},
	{Degree, KindScalar, textControls},
	{FieldOfStudy, KindScalar, textControls},
	{GraduationYear, KindScalar, textControls},
	{GPA, KindScalar, textControls},
	{VisaStatus, KindScalar, textControls},
	{RequiresSponsorship, KindBoolean, choiceControls},
	{SalaryExpectation, KindScalar, textControls},
	{StartDate, KindScalar, textControls},
	{RemoteWork, KindBoolean, choiceControls},
	{WillingToRelocate, KindBoolean, choiceControls},
	{Resume, KindFile, fileControls},
	{CoverLetter, KindFile, fileControls},
	{Transcript, KindFile, fileControls},
}

var byName = func() map[Attribute]Spec {
	m := make(map[Attribute]Spec, len(catalog))
	for _, s := range catalog {
		m[s.Name] = s
	}
	return m
}()

// All returns every attribute spec in stable catalog order.
func All() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns every attribute name in stable catalog order.
func Names() []Attribute {
	out := make([]Attribute, len(catalog))
	for i, s := range catalog {
		out[i] = s.Name
	}
	return out
}

// Lookup returns the spec for an attribute name.
func Lookup(name Attribute) (Spec, bool) {
	s, ok := byName[name]
	return s, ok
}

// Known reports whether the name belongs to the closed schema.
func Known(name Attribute) bool {
	_, ok := byName[name]
	return ok
}

// ExpectsControl reports whether the attribute is normally written into the
// given control class.
func (s Spec) ExpectsControl(c ControlClass) bool {
	for _, ec := range s.ExpectedControls {
		if ec == c {
			return true
		}
	}
	return false
}
