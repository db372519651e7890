package forms

import (
	"github.com/thebestschool/school_site/models"
	"github.com/thebestschool/school_site/validators"
)

const (
	ContactForm    = "contact"
	EnrollmentForm = "enrollment"
)

// Schema configures one kind of form: its fields and their rules, where
// submissions are relayed and the copy shown after the attempt.
type Schema struct {
	Name           string
	Fields         []validators.Field
	Endpoint       string
	SuccessMessage string
	FailureMessage string
	// Subject renders the relay's _subject line from the submitted data.
	Subject func(models.FormData) string
}

func (s Schema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Empty returns FormData with every field present and blank.
func (s Schema) Empty() models.FormData {
	data := make(models.FormData, len(s.Fields))
	for _, f := range s.Fields {
		data[f.Name] = ""
	}
	return data
}

// Payload is the JSON object posted to the relay: every field plus the
// reply-to and subject hints the relay uses for the forwarded email.
func (s Schema) Payload(data models.FormData) map[string]string {
	payload := make(map[string]string, len(s.Fields)+2)
	for _, f := range s.Fields {
		payload[f.Name] = data[f.Name]
	}
	payload["_replyto"] = data["email"]
	if s.Subject != nil {
		payload["_subject"] = s.Subject(data)
	}
	return payload
}

// Registry holds the schemas served by the site, keyed by form name.
type Registry map[string]Schema

func NewRegistry(schemas ...Schema) Registry {
	r := make(Registry, len(schemas))
	for _, s := range schemas {
		r[s.Name] = s
	}
	return r
}

func (r Registry) Lookup(name string) (Schema, bool) {
	s, ok := r[name]
	return s, ok
}
