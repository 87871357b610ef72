package models

// Stanza is a single RFC822-style paragraph. Order keeps the fields in the
// order they were read so that re-emitted stanzas stay stable.
type Stanza struct {
	Order  []string
	Values map[string]string
}

// NewStanza creates an empty stanza
func NewStanza() Stanza {
	return Stanza{Values: make(map[string]string)}
}

// Has reports whether the field is present
func (s Stanza) Has(field string) bool {
	_, ok := s.Values[field]
	return ok
}

// Get returns the value of field, or "" when it is absent
func (s Stanza) Get(field string) string {
	return s.Values[field]
}

// Set assigns a field, appending it to Order when new
func (s *Stanza) Set(field, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if _, ok := s.Values[field]; !ok {
		s.Order = append(s.Order, field)
	}
	s.Values[field] = value
}

// Len returns the number of fields
func (s Stanza) Len() int {
	return len(s.Order)
}

// Plugin represents a single plugin directory and its packaging metadata
type Plugin struct {
	Name string
	// Dir is the absolute or base-relative plugin directory
	Dir string

	// Control is the first paragraph of <plugin>/control
	Control Stanza

	// Tests is nil when the plugin ships no tests stanza
	Tests *Stanza
}

// Control fields
const (
	FieldSuggests     = "Suggests"
	FieldRecommends   = "Recommends"
	FieldDepends      = "Depends"
	FieldUploaders    = "Uploaders"
	FieldVersion      = "Version"
	FieldHomepage     = "Homepage"
	FieldWatch        = "Watch"
	FieldDescription  = "Description"
	FieldBuildDepends = "Build-Depends"
)

// Tests stanza fields
const (
	FieldRestrictions = "Restrictions"
	FieldTests        = "Tests"
	FieldTestCommand  = "Test-Command"
)

// ControlFields is the allow-list of fields in a plugin control stanza
var ControlFields = []string{
	FieldSuggests,
	FieldRecommends,
	FieldDepends,
	FieldUploaders,
	FieldVersion,
	FieldHomepage,
	FieldWatch,
	FieldDescription,
	FieldBuildDepends,
}

// TestsFields is the allow-list of fields in a plugin tests stanza
var TestsFields = []string{
	FieldDepends,
	FieldRestrictions,
	FieldTests,
	FieldTestCommand,
}
