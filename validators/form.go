package validators

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/thebestschool/school_site/models"
)

const EmailMessage = "Please enter a valid email address"

// \s is ASCII-only in RE2; \v, \p{Z} and U+FEFF cover the rest of the
// whitespace a browser's \s matches.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// trim strips the same characters a browser's String.prototype.trim does.
func trim(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// Rule checks one field value and returns a message when it fails.
type Rule func(value string) (string, bool)

// Field binds a form field to its ordered rules. The first failing rule
// decides the field's message.
type Field struct {
	Name  string
	Label string
	Rules []Rule
}

// Required fails with "<label> is required" on blank input.
func Required(label string) Rule {
	msg := label + " is required"
	return func(value string) (string, bool) {
		if trim(value) == "" {
			return msg, false
		}
		return "", true
	}
}

// RequiredMessage is Required with a custom message.
func RequiredMessage(msg string) Rule {
	return func(value string) (string, bool) {
		if trim(value) == "" {
			return msg, false
		}
		return "", true
	}
}

// Email matches the raw value against local@domain.tld. Blank values pass so
// optional email fields stay optional; pair with Required when needed.
func Email() Rule {
	return func(value string) (string, bool) {
		if trim(value) == "" || IsValidEmail(value) {
			return "", true
		}
		return EmailMessage, false
	}
}

// IsValidEmail reports whether email looks like local@domain.tld with no
// whitespace anywhere.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// MinLength requires at least n UTF-16 code units after trimming, which is
// how browsers measure string length.
func MinLength(n int, msg string) Rule {
	return func(value string) (string, bool) {
		v := trim(value)
		if v == "" || len(utf16.Encode([]rune(v))) >= n {
			return "", true
		}
		return msg, false
	}
}

// IntRange requires the leading integer of the value to fall in [min, max].
func IntRange(min, max int, msg string) Rule {
	return func(value string) (string, bool) {
		if trim(value) == "" {
			return "", true
		}
		n, ok := LeadingInt(value)
		if !ok || n < min || n > max {
			return msg, false
		}
		return "", true
	}
}

// LeadingInt parses an optional sign followed by decimal digits at the start
// of the trimmed value and ignores whatever follows, so "12 years" is 12.
func LeadingInt(value string) (int, bool) {
	s := trim(value)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (1<<31)/10 {
			// saturate long digit runs
			n = 1 << 31
		} else {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// Validate runs every field's rules independently and reports all failures.
func Validate(fields []Field, data models.FormData) models.ValidationErrors {
	errs := models.ValidationErrors{}
	for _, f := range fields {
		value := data[f.Name]
		for _, rule := range f.Rules {
			if msg, ok := rule(value); !ok {
				errs[f.Name] = msg
				break
			}
		}
	}
	return errs
}
