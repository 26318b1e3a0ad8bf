package variant

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "dasbor/entity"
)

func TestResolve(t *testing.T) {

	cases := []struct {
		variant  Variant
		endpoint string
		required []string
		dialog   Dialog
	}{
		{Testimonial(), "/api/testimonial", []string{"image", "name", "university", "testimonial"}, EntityDialog},
		{ProjectClient(), "/api/project-testi-client", []string{"image", "name", "company", "testimonial"}, EntityDialog},
		{DocImage(Development), "/api/development-app-logos", []string{"image"}, ImageDialog},
		{DocImage(Security), "/api/security-mitra-logos", []string{"image"}, ImageDialog},
		{DocImage(Dokumentasi), "/api/dokumentasi", []string{"image"}, ImageDialog},
	}

	for _, tc := range cases {
		t.Run(tc.variant.String(), func(t *testing.T) {
			spec, err := Resolve(tc.variant)
			require.NoError(t, err)
			assert.Equal(t, tc.endpoint, spec.Endpoint)
			assert.Equal(t, tc.required, spec.Required)
			assert.True(t, spec.Reachable(tc.dialog))
			assert.False(t, spec.Reachable(NoDialog))
		})
	}
}

func TestResolveErrors(t *testing.T) {

	_, err := Resolve(None())
	assert.ErrorIs(t, err, ErrNoVariant)

	_, err = Resolve(DocImage("brochure"))
	assert.ErrorIs(t, err, ErrInvalidDocType)
	assert.Contains(t, err.Error(), "Invalid document type")
}

func TestParseDocKind(t *testing.T) {

	cases := map[string]DocKind{
		"development": Development,
		"security":    Security,
		"dokumentasi": Dokumentasi,
		"":            Dokumentasi,
	}
	for in, want := range cases {
		got, err := ParseDocKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDocKind("generic")
	assert.True(t, errors.Is(err, ErrInvalidDocType))
}

func TestFromFlags(t *testing.T) {

	v, err := FromFlags(true, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, Testimonial(), v)

	v, err = FromFlags(false, true, false, "")
	require.NoError(t, err)
	assert.Equal(t, ProjectClient(), v)

	v, err = FromFlags(false, false, true, "security")
	require.NoError(t, err)
	assert.Equal(t, DocImage(Security), v)

	v, err = FromFlags(false, false, false, "security")
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	_, err = FromFlags(true, true, false, "")
	assert.ErrorIs(t, err, ErrConflictingVariants)

	_, err = FromFlags(false, false, true, "bogus")
	assert.ErrorIs(t, err, ErrInvalidDocType)
}

func TestValidate(t *testing.T) {

	spec, err := Resolve(Testimonial())
	require.NoError(t, err)

	dft := nt.NewDraft().With("name", "Alice").With("university", "MIT")

	err = spec.Validate(dft)
	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"image", "testimonial"}, missing.Fields)
	assert.Equal(t, "All fields are required (missing: image, testimonial)", err.Error())

	dft = dft.With("testimonial", "Great").WithImage(&nt.Attachment{Filename: "a.png", Content: []byte("png")})
	assert.NoError(t, spec.Validate(dft))
}

func TestUpdateRequired(t *testing.T) {

	spec, err := Resolve(ProjectClient())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "company", "testimonial"}, spec.UpdateRequired())

	spec, err = Resolve(DocImage(Security))
	require.NoError(t, err)
	assert.Equal(t, []string{"image"}, spec.UpdateRequired())
	assert.True(t, spec.ImageOnly())
}

func parts(t *testing.T, pl nt.Payload) (names []string, values map[string]string) {
	t.Helper()

	_, params, err := mime.ParseMediaType(pl.ContentType)
	require.NoError(t, err)

	values = map[string]string{}
	rdr := multipart.NewReader(bytes.NewReader(pl.Body), params["boundary"])
	for {
		part, err := rdr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		data, err := io.ReadAll(part)
		require.NoError(t, err)

		names = append(names, part.FormName())
		values[part.FormName()] = string(data)
	}
	return
}

func TestPayload(t *testing.T) {

	spec, err := Resolve(ProjectClient())
	require.NoError(t, err)

	dft := nt.NewDraft().
		With("name", "Bob").
		With("company", "Acme").
		With("testimonial", "Solid work").
		WithImage(&nt.Attachment{Filename: "bob.png", Content: []byte("pngdata")})

	pl, err := spec.Payload(dft)
	require.NoError(t, err)

	names, values := parts(t, pl)
	assert.Equal(t, []string{"image", "name", "company", "testimonial"}, names)
	assert.Equal(t, "pngdata", values["image"])
	assert.Equal(t, "Acme", values["company"])
}

func TestPayloadInvalid(t *testing.T) {

	spec, err := Resolve(Testimonial())
	require.NoError(t, err)

	_, err = spec.Payload(nt.NewDraft())
	var missing *MissingError
	assert.ErrorAs(t, err, &missing)
}

func TestUpdatePayloadWithoutImage(t *testing.T) {

	spec, err := Resolve(Testimonial())
	require.NoError(t, err)

	dft := nt.NewDraft().With("name", "A").With("university", "U").With("testimonial", "T")

	pl, err := spec.UpdatePayload(dft)
	require.NoError(t, err)

	names, _ := parts(t, pl)
	assert.Equal(t, []string{"name", "university", "testimonial"}, names)
}
