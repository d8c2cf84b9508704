package document

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// TypeOption is a selectable document type.
type TypeOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var TypeOptions = []TypeOption{
	{Label: "CV", Value: "cv"},
	{Label: "PAN Card", Value: "pan_card"},
	{Label: "Address Proof", Value: "address_proof"},
	{Label: "Photo", Value: "photo"},
	{Label: "Qualification Certificate", Value: "qualification_cert"},
	{Label: "Offer Letter", Value: "offer_letter"},
	{Label: "Appointment Letter", Value: "appointment_letter"},
	{Label: "Previous Company Experience Letter", Value: "prev_exp_letter"},
	{Label: "Previous Company Offer Letter", Value: "prev_offer_letter"},
	{Label: "Previous Company Salary Slip", Value: "prev_salary_slip"},
	{Label: "Previous Company Other Documents", Value: "prev_other_docs"},
}

// RequiredTypes must be on file for every employee.
var RequiredTypes = []string{"cv", "pan_card", "address_proof", "photo", "qualification_cert"}

// NormalizeType maps a value or label onto a known type value.
// Unknown input is returned trimmed.
func NormalizeType(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	for _, o := range TypeOptions {
		if o.Value == v {
			return o.Value
		}
	}
	for _, o := range TypeOptions {
		if strings.EqualFold(o.Label, v) {
			return o.Value
		}
	}
	return v
}

// Label returns the display label of a document type.
func Label(value string) string {
	v := NormalizeType(value)
	for _, o := range TypeOptions {
		if o.Value == v {
			return o.Label
		}
	}
	if value == "" {
		return "Document"
	}
	return value
}

func IsRequiredType(t string) bool {
	return slices.Contains(RequiredTypes, t)
}

// FormatFileSize renders a byte count as B, KB or MB.
func FormatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// Document is a policy or employee document on file.
type Document struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	DocumentType string `json:"document_type"`
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
	UploadedAt   string `json:"uploaded_at"`
}

type ListResponse struct {
	Results []Document `json:"results"`
}

type View struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	TypeLabel  string `json:"typeLabel"`
	Required   bool   `json:"required"`
	URL        string `json:"url"`
	FileName   string `json:"fileName"`
	Size       string `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

func (d Document) View() View {
	t := NormalizeType(d.DocumentType)
	return View{
		ID:         d.ID,
		Title:      d.Title,
		Type:       t,
		TypeLabel:  Label(t),
		Required:   IsRequiredType(t),
		URL:        d.FileURL,
		FileName:   d.FileName,
		Size:       FormatFileSize(d.FileSize),
		UploadedAt: d.UploadedAt,
	}
}

// Missing lists the required types not present in docs.
func Missing(docs []Document) []string {
	have := map[string]bool{}
	for _, d := range docs {
		have[NormalizeType(d.DocumentType)] = true
	}
	var out []string
	for _, t := range RequiredTypes {
		if !have[t] {
			out = append(out, t)
		}
	}
	return out
}

const MaxUploadSize = 10 << 20

var AllowedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx"}

// Upload is a document to send to the backend.
type Upload struct {
	Title        string
	DocumentType string
	FileName     string
	Content      []byte
}

func (u *Upload) Validate() error {
	if strings.TrimSpace(u.FileName) == "" || len(u.Content) == 0 {
		return ErrEmptyFile
	}
	if len(u.Content) > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(u.FileName))) {
		return ErrUnsupportedType
	}
	u.DocumentType = NormalizeType(u.DocumentType)
	if strings.TrimSpace(u.Title) == "" {
		u.Title = Label(u.DocumentType)
	}
	return nil
}
