package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thebestschool/school_site/validators"
)

func TestContactPayload(t *testing.T) {
	payload := Contact("").Payload(validContact())

	assert.Equal(t, map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"phone":    "",
		"subject":  "Admissions",
		"message":  "Hello",
		"_replyto": "jane@example.com",
		"_subject": "Contact Form: Admissions",
	}, payload)
}

func TestEnrollmentPayloadCarriesEveryField(t *testing.T) {
	payload := Enrollment("").Payload(validEnrollment())

	for _, name := range Enrollment("").FieldNames() {
		assert.Contains(t, payload, name)
	}
	assert.Equal(t, "New Enrollment - Emma", payload["_subject"])
	assert.Equal(t, "sarah@example.com", payload["_replyto"])
}

func TestEnrollmentRules(t *testing.T) {
	schema := Enrollment("")
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"student name blank", "studentName", " ", "Student name is required"},
		{"student name short", "studentName", "E", "Student name must be at least 2 characters"},
		{"parent blank", "parentName", "", "Parent/Guardian name is required"},
		{"email format", "email", "sarah", validators.EmailMessage},
		{"phone blank", "phone", "", "Phone number is required"},
		{"phone short", "phone", " 12345 ", "Please enter a valid phone number"},
		{"age blank", "studentAge", "", "Student age is required"},
		{"age too young", "studentAge", "2", "Student age must be between 3 and 18 years"},
		{"age too old", "studentAge", "19", "Student age must be between 3 and 18 years"},
		{"age not a number", "studentAge", "ten", "Student age must be between 3 and 18 years"},
		{"program blank", "program", "", "Program selection is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validEnrollment()
			data[tt.field] = tt.value
			errs := validators.Validate(schema.Fields, data)
			assert.Equal(t, map[string]string{tt.field: tt.want}, map[string]string(errs))
		})
	}
}

func TestEnrollmentAgeBoundaries(t *testing.T) {
	schema := Enrollment("")
	for _, age := range []string{"3", "18", "10"} {
		data := validEnrollment()
		data["studentAge"] = age
		assert.Empty(t, validators.Validate(schema.Fields, data), age)
	}
}

func TestEnrollmentMessageOptional(t *testing.T) {
	data := validEnrollment()
	data["message"] = ""
	assert.Empty(t, validators.Validate(Enrollment("").Fields, data))
}

func TestContactPhoneOptional(t *testing.T) {
	data := validContact()
	data["phone"] = ""
	assert.Empty(t, validators.Validate(Contact("").Fields, data))
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(Contact("a"), Enrollment("b"))

	s, ok := r.Lookup(EnrollmentForm)
	assert.True(t, ok)
	assert.Equal(t, "b", s.Endpoint)

	_, ok = r.Lookup("newsletter")
	assert.False(t, ok)
}
