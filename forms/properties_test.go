//go:build property

package forms

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/thebestschool/school_site/models"
	"github.com/thebestschool/school_site/validators"
)

func genWord() gopter.Gen {
	return gen.AlphaString().SuchThat(func(s string) bool { return s != "" })
}

func genBlank() gopter.Gen {
	return gen.OneConstOf("", " ", "\t", "  \n ")
}

// TestValidationProperties checks the validator against arbitrary contact data.
func TestValidationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	schema := Contact("")

	properties.Property("complete data with a well-formed email validates clean", prop.ForAll(
		func(name, local, domain, tld, subject, message string) bool {
			data := models.FormData{
				"name":    name,
				"email":   local + "@" + domain + "." + tld,
				"subject": subject,
				"message": message,
			}
			return len(validators.Validate(schema.Fields, data)) == 0
		},
		genWord(), genWord(), genWord(), genWord(), genWord(), genWord(),
	))

	required := []string{"name", "email", "subject", "message"}
	properties.Property("a single blank required field is the only error", prop.ForAll(
		func(idx int, blank string) bool {
			data := models.FormData{
				"name":    "Jane",
				"email":   "jane@example.com",
				"subject": "Admissions",
				"message": "Hi",
			}
			field := required[idx]
			data[field] = blank
			errs := validators.Validate(schema.Fields, data)
			return len(errs) == 1 && strings.HasSuffix(errs[field], "is required")
		},
		gen.IntRange(0, len(required)-1), genBlank(),
	))

	properties.TestingRun(t)
}

func TestStudentAgeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(97531)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	schema := Enrollment("")

	properties.Property("age is valid exactly inside [3, 18]", prop.ForAll(
		func(age int) bool {
			data := models.FormData{
				"studentName": "Emma",
				"parentName":  "Sarah",
				"email":       "s@example.com",
				"phone":       "0123456789",
				"studentAge":  strconv.Itoa(age),
				"program":     "Elementary Program",
			}
			_, failed := validators.Validate(schema.Fields, data)["studentAge"]
			return failed == (age < 3 || age > 18)
		},
		gen.IntRange(-50, 150),
	))

	properties.TestingRun(t)
}

func TestEditClearsOnlyEditedField(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(8642)

	properties := gopter.NewProperties(parameters)

	properties.Property("editing one errored field leaves the others", prop.ForAll(
		func(idx int, value string) bool {
			s := Open(Enrollment(""), nil, nil)
			if _, err := s.Submit(context.Background()); err == nil {
				return false
			}
			before := s.Snapshot().Errors
			names := Enrollment("").FieldNames()
			field := names[idx]
			if err := s.SetField(field, value); err != nil {
				return false
			}
			after := s.Snapshot().Errors
			if _, still := after[field]; still {
				return false
			}
			for name, msg := range before {
				if name != field && after[name] != msg {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 6), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
