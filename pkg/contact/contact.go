package contact

import (
	"sort"
	"strings"
)

var Subjects = []string{"technical-support", "consultation", "partnership", "feedback", "other"}

const ThankYou = "Thank you for your message! We will get back to you soon."

type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidationError maps each rejected field to the reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "invalid contact form: " + strings.Join(names, ", ")
}

func (f Form) Validate() (Form, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.ToLower(strings.TrimSpace(f.Subject))
	f.Message = strings.TrimSpace(f.Message)

	bad := map[string]string{}
	if f.Name == "" {
		bad["name"] = "required"
	}
	switch {
	case f.Email == "":
		bad["email"] = "required"
	case !validEmail(f.Email):
		bad["email"] = "not an email address"
	}
	switch {
	case f.Subject == "":
		bad["subject"] = "required"
	case !validSubject(f.Subject):
		bad["subject"] = "must be one of " + strings.Join(Subjects, ", ")
	}
	if f.Message == "" {
		bad["message"] = "required"
	}
	if len(bad) > 0 {
		return f, &ValidationError{Fields: bad}
	}
	return f, nil
}

func validEmail(s string) bool {
	if strings.Count(s, "@") != 1 || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	return local != "" && domain != ""
}

func validSubject(s string) bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}
