package pages

import (
	"github.com/a-h/templ"

	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/models"
)

// TurnstileField is the form value Cloudflare's widget posts its token in.
const TurnstileField = "cf-turnstile-response"

type FormView struct {
	Schema   forms.Schema
	Snapshot models.Snapshot
	SiteKey  string
}

type widgetKind int

const (
	inputWidget widgetKind = iota
	selectWidget
	textareaWidget
)

type widget struct {
	Name        string
	Label       string
	Kind        widgetKind
	Type        string
	Placeholder string
	Options     []string
	Required    bool
}

var contactWidgets = []widget{
	{Name: "name", Label: "Full Name", Type: "text", Placeholder: "Your full name", Required: true},
	{Name: "email", Label: "Email Address", Type: "email", Placeholder: "your.email@example.com", Required: true},
	{Name: "phone", Label: "Phone Number", Type: "tel", Placeholder: "+48 123 456 789"},
	{Name: "subject", Label: "Subject", Kind: selectWidget, Placeholder: "Select a subject", Options: ContactSubjects, Required: true},
	{Name: "message", Label: "Message", Kind: textareaWidget, Placeholder: "How can we help you?", Required: true},
}

var enrollmentWidgets = []widget{
	{Name: "studentName", Label: "Student Name", Type: "text", Placeholder: "Student's full name", Required: true},
	{Name: "studentAge", Label: "Student Age", Type: "number", Placeholder: "Age", Required: true},
	{Name: "parentName", Label: "Parent/Guardian Name", Type: "text", Placeholder: "Parent or guardian's full name", Required: true},
	{Name: "phone", Label: "Phone Number", Type: "tel", Placeholder: "+48 123 456 789", Required: true},
	{Name: "email", Label: "Email Address", Type: "email", Placeholder: "your.email@example.com", Required: true},
	{Name: "program", Label: "Program of Interest", Kind: selectWidget, Placeholder: "Select a program", Options: ProgramTitles(), Required: true},
	{Name: "message", Label: "Additional Information", Kind: textareaWidget, Placeholder: "Tell us about the student"},
}

type formText struct {
	Title  string
	Intro  string
	Submit string
	Again  string
}

var (
	contactText = formText{
		Title:  "Get in Touch",
		Intro:  "Have questions? We'd love to hear from you.",
		Submit: "Send Message",
		Again:  "Send Another Message",
	}
	enrollmentText = formText{
		Title:  "Start Your Journey",
		Intro:  "Complete the form below and our admissions team will contact you.",
		Submit: "Submit Application",
		Again:  "Submit Another Application",
	}
)

func ContactFormView(v FormView) templ.Component {
	return formSection(v, contactText, contactWidgets)
}

func EnrollmentFormView(v FormView) templ.Component {
	return formSection(v, enrollmentText, enrollmentWidgets)
}

func controlID(form string, w widget) string {
	return form + "-" + w.Name
}

func requiredMark(w widget) string {
	if w.Required {
		return " *"
	}
	return ""
}

// controlAttrs are shared by every input, select and textarea. A field with
// an error points screen readers at its message.
func controlAttrs(form string, w widget, fieldErr string) templ.OrderedAttributes {
	id := controlID(form, w)
	attrs := templ.OrderedAttributes{
		{Key: "id", Value: id},
		{Key: "name", Value: w.Name},
	}
	if fieldErr != "" {
		attrs = append(attrs,
			templ.KeyValue[string, any]{Key: "aria-invalid", Value: "true"},
			templ.KeyValue[string, any]{Key: "aria-describedby", Value: id + "-error"},
		)
	}
	return attrs
}
