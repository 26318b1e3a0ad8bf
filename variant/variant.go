// Package variant is the closed set of resource shapes a table can create against.
//
// Each variant resolves to a Spec naming its endpoint, form fields and required
// fields, and knows how to encode a draft as a multipart upload.
package variant

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidDocType      = errors.New("Invalid document type")
	ErrNoVariant           = errors.New("no variant selected")
	ErrConflictingVariants = errors.New("more than one variant selected")
)

// DocKind selects the endpoint for documentation images.
type DocKind string

const (
	Development DocKind = "development"
	Security    DocKind = "security"
	Dokumentasi DocKind = "dokumentasi"
)

// ParseDocKind validates a documentation kind.
// An absent kind is the generic documentation endpoint.
// Any other unrecognised kind is rejected with ErrInvalidDocType rather than routed there.
func ParseDocKind(kind string) (DocKind, error) {

	switch DocKind(kind) {
	case "", Dokumentasi:
		return Dokumentasi, nil
	case Development, Security:
		return DocKind(kind), nil
	}

	return "", errors.Wrapf(ErrInvalidDocType, "kind %q", kind)
}

type shape int

const (
	none shape = iota
	testimonial
	projectClient
	docImage
)

// Variant is one resource shape, the zero value being none.
type Variant struct {
	shape shape
	doc   DocKind
}

// None is the variant of a read-only table.
func None() Variant {
	return Variant{}
}

// Testimonial is the student testimonial variant.
func Testimonial() Variant {
	return Variant{shape: testimonial}
}

// ProjectClient is the project client testimonial variant.
func ProjectClient() Variant {
	return Variant{shape: projectClient}
}

// DocImage is the documentation image variant for kind.
func DocImage(kind DocKind) Variant {
	return Variant{shape: docImage, doc: kind}
}

// IsNone reports whether no variant is selected.
func (v Variant) IsNone() bool {
	return v.shape == none
}

// Doc returns the documentation kind, empty for other variants.
func (v Variant) Doc() DocKind {
	return v.doc
}

func (v Variant) String() string {

	switch v.shape {
	case testimonial:
		return "testimonial"
	case projectClient:
		return "project-client"
	case docImage:
		return fmt.Sprintf("doc-image(%s)", v.doc)
	}
	return "none"
}

// FromFlags maps loose activation flags onto a variant.
// Setting more than one flag is rejected rather than given a precedence.
func FromFlags(isTestimonial, isProjectTestiClient, isDokumentasi bool, docType string) (v Variant, err error) {

	count := 0
	for _, flag := range []bool{isTestimonial, isProjectTestiClient, isDokumentasi} {
		if flag {
			count++
		}
	}
	if count > 1 {
		err = ErrConflictingVariants
		return
	}

	switch {
	case isTestimonial:
		v = Testimonial()
	case isProjectTestiClient:
		v = ProjectClient()
	case isDokumentasi:
		var kind DocKind
		kind, err = ParseDocKind(docType)
		if err != nil {
			return
		}
		v = DocImage(kind)
	}
	return
}
