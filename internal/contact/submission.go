// Package contact validates project inquiries from the contact form and hands
// them to a Mailer.
package contact

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
)

// Form field names.
const (
	FieldCompanyOrName = "companyOrName"
	FieldContact       = "contact"
	FieldEmail         = "email"
	FieldProjectType   = "projectType"
	FieldContent       = "content"
	FieldBudget        = "budget"
	FieldStartDate     = "startDate"
	FieldEndDate       = "endDate"
	FieldReference     = "reference"
)

// DefaultMaxUpload bounds the request body when no limit is configured.
const DefaultMaxUpload int64 = 10 << 20

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrTooLarge is returned when the submitted body exceeds the upload limit.
var ErrTooLarge = errors.New("contact: request body too large")

// Submission is one inquiry as entered in the form.
type Submission struct {
	CompanyOrName string
	Contact       string
	Email         string
	ProjectType   string
	Content       string
	Budget        string
	StartDate     string
	EndDate       string
	Reference     *Attachment
}

// Attachment is the optional reference file.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the attachment length in bytes.
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the offending field names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.fields {
		if f == field {
			return true
		}
	}
	return false
}

// Validate checks the required fields and the email shape.
func (s Submission) Validate() error {
	var invalid []string
	required := []struct {
		name  string
		value string
	}{
		{FieldCompanyOrName, s.CompanyOrName},
		{FieldContact, s.Contact},
		{FieldEmail, s.Email},
		{FieldProjectType, s.ProjectType},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			invalid = append(invalid, r.name)
		}
	}
	if email := strings.TrimSpace(s.Email); email != "" && !emailPattern.MatchString(email) {
		invalid = append(invalid, FieldEmail)
	}
	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

// ParseSubmission reads a multipart or urlencoded form. Text fields are trimmed.
func ParseSubmission(w http.ResponseWriter, r *http.Request, maxUpload int64) (Submission, error) {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxUpload)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return Submission{}, ErrTooLarge
		}
		return Submission{}, fmt.Errorf("contact: parse form: %w", err)
	}

	field := func(name string) string {
		return strings.TrimSpace(r.PostFormValue(name))
	}
	sub := Submission{
		CompanyOrName: field(FieldCompanyOrName),
		Contact:       field(FieldContact),
		Email:         field(FieldEmail),
		ProjectType:   field(FieldProjectType),
		Content:       field(FieldContent),
		Budget:        field(FieldBudget),
		StartDate:     field(FieldStartDate),
		EndDate:       field(FieldEndDate),
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile(FieldReference)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return Submission{}, fmt.Errorf("contact: read reference: %w", err)
		default:
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return Submission{}, fmt.Errorf("contact: read reference: %w", err)
			}
			if len(data) > 0 {
				ct := header.Header.Get("Content-Type")
				if ct == "" {
					ct = http.DetectContentType(data)
				}
				sub.Reference = &Attachment{
					Filename:    header.Filename,
					ContentType: ct,
					Data:        data,
				}
			}
		}
	}
	return sub, nil
}
