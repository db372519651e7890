package forms

import (
	"github.com/thebestschool/school_site/models"
	v "github.com/thebestschool/school_site/validators"
)

// DefaultContactEndpoint is the Formspree form that receives general
// inquiries.
const DefaultContactEndpoint = "https://formspree.io/f/xdkogkqw"

func Contact(endpoint string) Schema {
	return Schema{
		Name: ContactForm,
		Fields: []v.Field{
			{Name: "name", Label: "Name", Rules: []v.Rule{v.Required("Name")}},
			{Name: "email", Label: "Email", Rules: []v.Rule{v.Required("Email"), v.Email()}},
			{Name: "phone", Label: "Phone"},
			{Name: "subject", Label: "Subject", Rules: []v.Rule{v.Required("Subject")}},
			{Name: "message", Label: "Message", Rules: []v.Rule{v.Required("Message")}},
		},
		Endpoint:       endpoint,
		SuccessMessage: "Thank you for contacting us. We will get back to you as soon as possible.",
		FailureMessage: "Something went wrong. Please try again or contact us directly.",
		Subject: func(d models.FormData) string {
			return "Contact Form: " + d["subject"]
		},
	}
}

func Enrollment(endpoint string) Schema {
	return Schema{
		Name: EnrollmentForm,
		Fields: []v.Field{
			{Name: "studentName", Label: "Student name", Rules: []v.Rule{
				v.Required("Student name"),
				v.MinLength(2, "Student name must be at least 2 characters"),
			}},
			{Name: "parentName", Label: "Parent/Guardian name", Rules: []v.Rule{
				v.Required("Parent/Guardian name"),
				v.MinLength(2, "Parent/Guardian name must be at least 2 characters"),
			}},
			{Name: "email", Label: "Email", Rules: []v.Rule{v.Required("Email"), v.Email()}},
			{Name: "phone", Label: "Phone number", Rules: []v.Rule{
				v.Required("Phone number"),
				v.MinLength(10, "Please enter a valid phone number"),
			}},
			{Name: "studentAge", Label: "Student age", Rules: []v.Rule{
				v.Required("Student age"),
				v.IntRange(3, 18, "Student age must be between 3 and 18 years"),
			}},
			{Name: "program", Label: "Program", Rules: []v.Rule{
				v.RequiredMessage("Program selection is required"),
			}},
			{Name: "message", Label: "Message"},
		},
		Endpoint:       endpoint,
		SuccessMessage: "Thank you for your interest! We will contact you soon.",
		FailureMessage: "Error submitting form. Please try again.",
		Subject: func(d models.FormData) string {
			return "New Enrollment - " + d["studentName"]
		},
	}
}
