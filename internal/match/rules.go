package match

import (
	"regexp"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// Candidate is one matching stage's proposal for a field. A stage that
// declines a field proposes the unmatched attribute with confidence 0.
type Candidate struct {
	Attribute  schema.Attribute
	Confidence float64
}

// None is the empty proposal.
func None() Candidate {
	return Candidate{Attribute: types.Unmatched, Confidence: 0}
}

// Rule binds one pattern to an attribute with the confidence a match
// earns before any control-kind adjustment. Patterns run against
// normalized labels, so they are written lowercase with single spaces;
// " ?" between words also admits the concatenated form ("firstname").
type Rule struct {
	Pattern   *regexp.Regexp
	Attribute schema.Attribute
	Base      float64
}

func rule(pattern string, attr schema.Attribute, base float64) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Attribute: attr, Base: base}
}

// rules is evaluated top to bottom and the first matching pattern wins,
// so specific patterns must stay above the generic ones that would
// otherwise swallow them: "first name" above "name", "email address"
// above "address", "education level" above "education". Reordering
// entries changes matching behavior.
var rules = []Rule{
	// Document uploads.
	rule(`\br[eé]sum[eé]\b`, schema.Resume, 0.8),
	rule(`\bcv\b`, schema.Resume, 0.8),
	rule(`\bcurriculum ?vitae\b`, schema.Resume, 0.8),
	rule(`\bcover(ing)? ?letter\b`, schema.CoverLetter, 0.8),
	rule(`\bmotivation\b`, schema.CoverLetter, 0.8),
	rule(`\btranscript\b`, schema.Transcript, 0.8),
	rule(`\bgrades\b`, schema.Transcript, 0.8),
	rule(`\bacademic ?record\b`, schema.Transcript, 0.8),

	// Name parts before anything that could claim a bare "name".
	rule(`\bfirst ?name\b`, schema.FirstName, 0.9),
	rule(`\bfname\b`, schema.FirstName, 0.9),
	rule(`\bgiven ?name\b`, schema.FirstName, 0.9),
	rule(`\bforename\b`, schema.FirstName, 0.9),
	rule(`\bname first\b`, schema.FirstName, 0.9),
	rule(`\blast ?name\b`, schema.LastName, 0.9),
	rule(`\blname\b`, schema.LastName, 0.9),
	rule(`\bsurname\b`, schema.LastName, 0.9),
	rule(`\bfamily ?name\b`, schema.LastName, 0.9),
	rule(`\bname last\b`, schema.LastName, 0.9),
	rule(`\bfull ?name\b`, schema.FullName, 0.9),
	rule(`\bcomplete ?name\b`, schema.FullName, 0.9),
	rule(`\byour ?name\b`, schema.FullName, 0.9),
	rule(`\bapplicant ?name\b`, schema.FullName, 0.9),

	// Contact. Email before the address block so "email address" never
	// reaches the address rules.
	rule(`\be ?mail\b`, schema.Email, 0.9),
	rule(`\bphone ?number\b`, schema.Phone, 0.9),
	rule(`\btelephone\b`, schema.Phone, 0.9),
	rule(`\bcontact ?number\b`, schema.Phone, 0.9),
	rule(`\bmobile\b`, schema.Phone, 0.8),
	rule(`\bcell\b`, schema.Phone, 0.8),
	rule(`\bphone\b`, schema.Phone, 0.9),
	rule(`\btel\b`, schema.Phone, 0.7),

	// Address parts, specific lines before the composite.
	rule(`\bstreet ?address\b`, schema.Street, 0.9),
	rule(`\baddress ?line ?1\b`, schema.Street, 0.9),
	rule(`\bstreet\b`, schema.Street, 0.8),
	rule(`\bhome ?address\b`, schema.Address, 0.9),
	rule(`\bmailing ?address\b`, schema.Address, 0.9),
	rule(`\bresidential ?address\b`, schema.Address, 0.9),
	rule(`\bcity\b`, schema.City, 0.9),
	rule(`\btown\b`, schema.City, 0.8),
	rule(`\blocality\b`, schema.City, 0.7),
	rule(`\bstate\b`, schema.State, 0.9),
	rule(`\bprovince\b`, schema.State, 0.9),
	rule(`\bregion\b`, schema.State, 0.6),
	rule(`\bzip ?code\b`, schema.Zip, 0.9),
	rule(`\bpostal ?code\b`, schema.Zip, 0.9),
	rule(`\bpostcode\b`, schema.Zip, 0.9),
	rule(`\bzip\b`, schema.Zip, 0.9),
	rule(`\bcountry\b`, schema.Country, 0.9),
	rule(`\bnationality\b`, schema.Country, 0.7),

	// Online presence.
	rule(`\blinked ?in\b`, schema.LinkedIn, 0.9),
	rule(`\bwebsite\b`, schema.Website, 0.9),
	rule(`\bportfolio\b`, schema.Website, 0.8),
	rule(`\bhomepage\b`, schema.Website, 0.8),
	rule(`\burl\b`, schema.Website, 0.7),

	// Education. Degree-level phrasing outranks the generic education
	// and school rules below it.
	rule(`\beducation ?level\b`, schema.Degree, 0.9),
	rule(`\bdegree\b`, schema.Degree, 0.9),
	rule(`\bqualification\b`, schema.Degree, 0.8),
	rule(`\bfield ?of ?study\b`, schema.FieldOfStudy, 0.9),
	rule(`\bmajor\b`, schema.FieldOfStudy, 0.9),
	rule(`\bgraduation ?year\b`, schema.GraduationYear, 0.9),
	rule(`\bgrad ?year\b`, schema.GraduationYear, 0.9),
	rule(`\bcompletion ?year\b`, schema.GraduationYear, 0.9),
	rule(`\bgraduation\b`, schema.GraduationYear, 0.8),
	rule(`\bgpa\b`, schema.GPA, 0.9),
	rule(`\bgrade ?point\b`, schema.GPA, 0.9),
	rule(`\buniversity\b`, schema.University, 0.9),
	rule(`\bcollege\b`, schema.University, 0.9),
	rule(`\balma ?mater\b`, schema.University, 0.9),
	rule(`\binstitution\b`, schema.University, 0.8),
	rule(`\bschool\b`, schema.University, 0.7),
	rule(`\beducation\b`, schema.University, 0.6),

	// Work authorization. Sponsorship is its own question and must not
	// collapse into visa status.
	rule(`\brequires? ?sponsorship\b`, schema.RequiresSponsorship, 0.9),
	rule(`\bneed ?sponsorship\b`, schema.RequiresSponsorship, 0.9),
	rule(`\bsponsorship\b`, schema.RequiresSponsorship, 0.8),
	rule(`\bsponsor\b`, schema.RequiresSponsorship, 0.7),
	rule(`\bvisa ?status\b`, schema.VisaStatus, 0.9),
	rule(`\bvisa\b`, schema.VisaStatus, 0.9),
	rule(`\bwork ?authori[sz]ation\b`, schema.VisaStatus, 0.9),
	rule(`\bauthori[sz]ed ?to ?work\b`, schema.VisaStatus, 0.8),
	rule(`\beligib(le|ility)\b`, schema.VisaStatus, 0.7),

	// Compensation and availability.
	rule(`\bsalary ?expectations?\b`, schema.SalaryExpectation, 0.9),
	rule(`\bexpected ?salary\b`, schema.SalaryExpectation, 0.9),
	rule(`\bdesired ?salary\b`, schema.SalaryExpectation, 0.9),
	rule(`\bsalary\b`, schema.SalaryExpectation, 0.8),
	rule(`\bcompensation\b`, schema.SalaryExpectation, 0.8),
	rule(`\bwage\b`, schema.SalaryExpectation, 0.7),
	rule(`\bpay\b`, schema.SalaryExpectation, 0.6),
	rule(`\bstart ?date\b`, schema.StartDate, 0.9),
	rule(`\bstart ?work\b`, schema.StartDate, 0.8),
	rule(`\bavailab(le|ility)\b`, schema.StartDate, 0.6),
	rule(`\bcommence\b`, schema.StartDate, 0.6),

	// Location preferences.
	rule(`\bremote ?work\b`, schema.RemoteWork, 0.9),
	rule(`\bwork ?remotely\b`, schema.RemoteWork, 0.9),
	rule(`\bwork ?from ?home\b`, schema.RemoteWork, 0.8),
	rule(`\bremote\b`, schema.RemoteWork, 0.7),
	rule(`\bwilling ?to ?relocate\b`, schema.WillingToRelocate, 0.9),
	rule(`\bopen ?to ?relocation\b`, schema.WillingToRelocate, 0.9),
	rule(`\brelocat(e|ion)\b`, schema.WillingToRelocate, 0.8),

	// Generic catch-alls. Low confidence keeps them from skipping the
	// AI stage and from silently outranking a manual mapping.
	rule(`\bprofile\b`, schema.LinkedIn, 0.6),
	rule(`\bname\b`, schema.FullName, 0.7),
	rule(`\baddress\b`, schema.Address, 0.7),
	rule(`\bfirst\b`, schema.FirstName, 0.7),
	rule(`\blast\b`, schema.LastName, 0.7),
	rule(`\byear\b`, schema.GraduationYear, 0.55),
	rule(`\bstatus\b`, schema.VisaStatus, 0.55),
}

// RuleMatcher resolves labels against the ordered rule table.
type RuleMatcher struct {
	rules   []Rule
	penalty float64
}

// NewRuleMatcher builds a matcher over the built-in table. kindPenalty
// is subtracted from a rule's base confidence when the field's control
// kind is not one the matched attribute is expected to land on; the
// match still stands so the resolver can weigh it against the AI stage.
func NewRuleMatcher(kindPenalty float64) *RuleMatcher {
	return &RuleMatcher{rules: rules, penalty: kindPenalty}
}

// Match returns the first rule claiming the label, or None. The label
// may be raw; it is normalized before the table runs, and an empty
// normalized label never matches.
func (m *RuleMatcher) Match(label string, kind types.ControlKind) Candidate {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return None()
	}
	for _, r := range m.rules {
		if !r.Pattern.MatchString(normalized) {
			continue
		}
		confidence := r.Base
		if spec, ok := schema.Lookup(r.Attribute); ok && !spec.ExpectsControl(schema.ControlClass(kind)) {
			confidence -= m.penalty
		}
		if confidence <= 0 {
			return None()
		}
		return Candidate{Attribute: r.Attribute, Confidence: confidence}
	}
	return None()
}

// Validate reports whether a proposed label → attribute mapping is one
// the rule table could itself have produced, used when reviewing saved
// site mappings.
func (m *RuleMatcher) Validate(label string, attr schema.Attribute) bool {
	if !schema.Known(attr) {
		return false
	}
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return false
	}
	for _, r := range m.rules {
		if r.Attribute == attr && r.Pattern.MatchString(normalized) {
			return true
		}
	}
	return false
}
