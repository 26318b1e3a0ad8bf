package variant

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/pkg/errors"

	nt "dasbor/entity"
)

// Dialog identifies one of a table's two creation dialogs.
type Dialog int

const (
	NoDialog Dialog = iota
	EntityDialog
	ImageDialog
)

func (dlg Dialog) String() string {

	switch dlg {
	case EntityDialog:
		return "entity"
	case ImageDialog:
		return "image"
	}
	return "none"
}

// Field is one input of a creation form.
type Field struct {
	Name      string
	Label     string
	Image     bool
	Multiline bool
}

// Spec is everything needed to create a resource of one variant.
type Spec struct {
	Name     string
	Title    string
	Noun     string
	Endpoint string
	Dialog   Dialog
	Fields   []Field
	Required []string
}

var (
	imageField = Field{Name: nt.ImageField, Label: "Photo", Image: true}
	nameField  = Field{Name: "name", Label: "Name"}
	quoteField = Field{Name: "testimonial", Label: "Testimonial", Multiline: true}
)

var docEndpoints = map[DocKind]string{
	Development: "/api/development-app-logos",
	Security:    "/api/security-mitra-logos",
	Dokumentasi: "/api/dokumentasi",
}

// Resolve returns the Spec for a variant.
func Resolve(v Variant) (spec Spec, err error) {

	switch v.shape {
	case testimonial:
		spec = Spec{
			Name:     v.String(),
			Title:    "Add Testimonial",
			Noun:     "testimonial",
			Endpoint: "/api/testimonial",
			Dialog:   EntityDialog,
			Fields:   []Field{imageField, nameField, {Name: "university", Label: "University"}, quoteField},
			Required: []string{nt.ImageField, "name", "university", "testimonial"},
		}

	case projectClient:
		spec = Spec{
			Name:     v.String(),
			Title:    "Add Project Client Testimonial",
			Noun:     "project client testimonial",
			Endpoint: "/api/project-testi-client",
			Dialog:   EntityDialog,
			Fields:   []Field{imageField, nameField, {Name: "company", Label: "Company"}, quoteField},
			Required: []string{nt.ImageField, "name", "company", "testimonial"},
		}

	case docImage:
		endpoint, ok := docEndpoints[v.doc]
		if !ok {
			err = errors.Wrapf(ErrInvalidDocType, "kind %q", v.doc)
			return
		}
		spec = Spec{
			Name:     v.String(),
			Title:    "Add Image",
			Noun:     "document",
			Endpoint: endpoint,
			Dialog:   ImageDialog,
			Fields:   []Field{{Name: nt.ImageField, Label: "Image", Image: true}},
			Required: []string{nt.ImageField},
		}

	default:
		err = ErrNoVariant
	}

	return
}

// Reachable reports whether the variant's creation flow lives in dialog.
func (spec Spec) Reachable(dialog Dialog) bool {
	return dialog != NoDialog && spec.Dialog == dialog
}

// ImageOnly reports whether the image is the variant's only field.
func (spec Spec) ImageOnly() bool {
	return len(spec.Fields) == 1 && spec.Fields[0].Image
}

// MissingError lists required fields left empty.
type MissingError struct {
	Fields []string
}

func (err *MissingError) Error() string {
	return fmt.Sprintf("All fields are required (missing: %s)", strings.Join(err.Fields, ", "))
}

// Validate checks every required field is filled.
func (spec Spec) Validate(dft nt.Draft) error {
	return spec.validate(dft, spec.Required)
}

// ValidateUpdate is Validate with the image optional unless it is the only field.
func (spec Spec) ValidateUpdate(dft nt.Draft) error {
	return spec.validate(dft, spec.UpdateRequired())
}

// UpdateRequired returns the fields required when editing an existing resource.
func (spec Spec) UpdateRequired() []string {

	if spec.ImageOnly() {
		return spec.Required
	}

	required := []string{}
	for _, name := range spec.Required {
		if name != nt.ImageField {
			required = append(required, name)
		}
	}
	return required
}

// Payload validates and encodes a draft for create.
func (spec Spec) Payload(dft nt.Draft) (pl nt.Payload, err error) {

	err = spec.Validate(dft)
	if err != nil {
		return
	}
	return spec.encode(dft)
}

// UpdatePayload validates and encodes a draft for update.
// The image part is sent only when one is attached.
func (spec Spec) UpdatePayload(dft nt.Draft) (pl nt.Payload, err error) {

	err = spec.ValidateUpdate(dft)
	if err != nil {
		return
	}
	return spec.encode(dft)
}

// unexported

func (spec Spec) validate(dft nt.Draft, required []string) error {

	missing := []string{}
	for _, name := range required {
		if dft.Empty(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &MissingError{Fields: missing}
	}
	return nil
}

func (spec Spec) encode(dft nt.Draft) (pl nt.Payload, err error) {

	buf := &bytes.Buffer{}
	mpw := multipart.NewWriter(buf)

	if att := dft.Image(); att != nil && len(att.Content) > 0 {
		var part io.Writer
		part, err = mpw.CreateFormFile(nt.ImageField, att.Filename)
		if err != nil {
			err = errors.Wrapf(err, "failed to create image part")
			return
		}
		_, err = part.Write(att.Content)
		if err != nil {
			err = errors.Wrapf(err, "failed to write image part")
			return
		}
	}

	for _, fld := range spec.Fields {
		if fld.Image {
			continue
		}
		err = mpw.WriteField(fld.Name, dft.Get(fld.Name))
		if err != nil {
			err = errors.Wrapf(err, "failed to write field %s", fld.Name)
			return
		}
	}

	err = mpw.Close()
	if err != nil {
		err = errors.Wrapf(err, "failed to close multipart writer")
		return
	}

	pl = nt.Payload{
		Body:        buf.Bytes(),
		ContentType: mpw.FormDataContentType(),
	}
	return
}
