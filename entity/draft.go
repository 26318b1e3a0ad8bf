package entity

import (
	"maps"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ImageField is the form field carrying a binary attachment.
const ImageField = "image"

// Attachment is a file bound for a multipart upload.
type Attachment struct {
	Filename string
	Content  []byte
}

// ReadAttachment loads a file from disk.
func ReadAttachment(path string) (att *Attachment, err error) {

	content, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read image from %s", path)
		return
	}

	att = &Attachment{
		Filename: filepath.Base(path),
		Content:  content,
	}
	return
}

// Draft is transient form state for a pending create or edit.
// Drafts are copied on write so copies of a model never share one.
type Draft struct {
	values map[string]string
	image  *Attachment
}

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{values: map[string]string{}}
}

// SeedDraft returns a draft holding values.
func SeedDraft(values map[string]string) Draft {
	return Draft{values: maps.Clone(values)}
}

// With returns a copy of the draft with field set.
func (dft Draft) With(field, value string) Draft {

	values := maps.Clone(dft.values)
	if values == nil {
		values = map[string]string{}
	}
	values[field] = value

	dft.values = values
	return dft
}

// WithImage returns a copy of the draft holding att.
func (dft Draft) WithImage(att *Attachment) Draft {
	dft.image = att
	return dft
}

// Get returns a text field.
func (dft Draft) Get(field string) string {
	return dft.values[field]
}

// Image returns the attachment, if any.
func (dft Draft) Image() *Attachment {
	return dft.image
}

// Values returns a copy of the text fields.
func (dft Draft) Values() map[string]string {
	return maps.Clone(dft.values)
}

// Empty reports whether a field has no value.
func (dft Draft) Empty(field string) bool {

	if field == ImageField {
		return dft.image == nil || len(dft.image.Content) == 0
	}
	return dft.values[field] == ""
}

// Payload is an encoded request body.
type Payload struct {
	Body        []byte
	ContentType string
}
