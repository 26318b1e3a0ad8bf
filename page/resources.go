package page

import (
	"cmp"
	"strings"
	"time"

	nt "dasbor/entity"
	"dasbor/variant"
)

const stampLayout = "2006-01-02 15:04"

// Testimonials is the student testimonial resource.
func Testimonials(loc *time.Location) Resource[nt.Testimonial] {
	return Resource[nt.Testimonial]{
		Title: "Testimonials",
		Noun:  "testimonial",
		Path:  "/api/testimonial",
		Columns: []nt.Column[nt.Testimonial]{
			{Header: "Id", Field: "id", Width: 5},
			{Header: "Name", Field: "name", Width: 20},
			{Header: "University", Field: "university", Width: 24},
			{Header: "Testimonial", Field: "testimonial", Width: 40},
			{Header: "Image", Field: "image", Width: 24},
			{Header: "Created", Width: 16, Render: func(row nt.Testimonial) string {
				return Stamp(loc, row.CreatedAt)
			}},
		},
		Variant: variant.Testimonial(),
		Id:      func(row nt.Testimonial) int { return row.Id },
		Less: func(a, b nt.Testimonial) int {
			return newestFirst(a.CreatedAt, b.CreatedAt)
		},
		Edit: ModalEdit,
		Seed: func(row nt.Testimonial) map[string]string {
			return map[string]string{
				nt.ImageField: row.Image,
				"name":        row.Name,
				"university":  row.University,
				"testimonial": row.Testimonial,
			}
		},
		Deletable: true,
	}
}

// ProjectClients is the project client testimonial resource.
func ProjectClients(loc *time.Location) Resource[nt.ProjectClient] {
	return Resource[nt.ProjectClient]{
		Title: "Project Clients",
		Noun:  "project client testimonial",
		Path:  "/api/project-testi-client",
		Columns: []nt.Column[nt.ProjectClient]{
			{Header: "Id", Field: "id", Width: 5},
			{Header: "Name", Field: "name", Width: 20},
			{Header: "Company", Field: "company", Width: 24},
			{Header: "Testimonial", Field: "testimonial", Width: 40},
			{Header: "Image", Field: "image", Width: 24},
			{Header: "Created", Width: 16, Render: func(row nt.ProjectClient) string {
				return Stamp(loc, row.CreatedAt)
			}},
		},
		Variant: variant.ProjectClient(),
		Id:      func(row nt.ProjectClient) int { return row.Id },
		Less: func(a, b nt.ProjectClient) int {
			return newestFirst(a.CreatedAt, b.CreatedAt)
		},
		Edit: ModalEdit,
		Seed: func(row nt.ProjectClient) map[string]string {
			return map[string]string{
				nt.ImageField: row.Image,
				"name":        row.Name,
				"company":     row.Company,
				"testimonial": row.Testimonial,
			}
		},
		Deletable: true,
	}
}

var docTitles = map[variant.DocKind]string{
	variant.Development: "App Logos",
	variant.Security:    "Partner Logos",
	variant.Dokumentasi: "Documentation",
}

// Docs is one of the image-only documentation resources.
// The dashboard search matches on id alone for these.
func Docs(kind variant.DocKind, loc *time.Location) (res Resource[nt.Image], err error) {

	v := variant.DocImage(kind)
	spec, err := variant.Resolve(v)
	if err != nil {
		return
	}

	res = Resource[nt.Image]{
		Title: docTitles[kind],
		Noun:  "image",
		Path:  spec.Endpoint,
		Columns: []nt.Column[nt.Image]{
			{Header: "Id", Field: "id", Width: 5},
			{Header: "Image", Field: "image", Width: 60},
			{Header: "Created", Width: 16, Render: func(row nt.Image) string {
				return Stamp(loc, row.CreatedAt)
			}},
		},
		Variant:      v,
		Id:           func(row nt.Image) int { return row.Id },
		SearchFields: []string{"id"},
		Edit:         ModalEdit,
		Seed: func(row nt.Image) map[string]string {
			return map[string]string{nt.ImageField: row.Image}
		},
		Deletable: true,
	}
	return
}

var contentFields = []variant.Field{
	{Name: "content_type", Label: "Content type"},
	{Name: "content", Label: "Content", Multiline: true},
}

// Footer is the footer copy resource, edited in place.
func Footer() Resource[nt.Content] {
	return content("Footer", "footer item", "/api/footer", nil)
}

// AboutUs is the about-us copy resource, edited in place and kept in id order.
func AboutUs() Resource[nt.Content] {
	return content("About Us", "about-us item", "/api/about-us", func(a, b nt.Content) int {
		return cmp.Compare(a.Id, b.Id)
	})
}

// Stamp formats an RFC3339 timestamp in loc, leaving anything unparseable as is.
func Stamp(loc *time.Location, raw string) string {

	ts, err := nt.Value{Raw: raw}.Time()
	if err != nil {
		return raw
	}
	if loc != nil {
		ts = ts.In(loc)
	}
	return ts.Format(stampLayout)
}

// unexported

func content(title, noun, path string, less func(a, b nt.Content) int) Resource[nt.Content] {
	return Resource[nt.Content]{
		Title: title,
		Noun:  noun,
		Path:  path,
		Columns: []nt.Column[nt.Content]{
			{Header: "Id", Field: "id", Width: 5},
			{Header: "Type", Field: "content_type", Width: 20},
			{Header: "Content", Field: "content", Width: 60},
		},
		Variant:    variant.None(),
		Id:         func(row nt.Content) int { return row.Id },
		Less:       less,
		Edit:       InlineEdit,
		EditFields: contentFields,
		Seed: func(row nt.Content) map[string]string {
			return map[string]string{
				"content_type": row.ContentType,
				"content":      row.Content,
			}
		},
	}
}

func newestFirst(a, b string) int {

	ta, erra := nt.Value{Raw: a}.Time()
	tb, errb := nt.Value{Raw: b}.Time()
	if erra != nil || errb != nil {
		return strings.Compare(b, a)
	}
	return tb.Compare(ta)
}
