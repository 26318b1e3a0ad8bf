package submit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dasbor/api"
	nt "dasbor/entity"
	"dasbor/variant"
)

type post struct {
	ctx  context.Context
	path string
	pl   nt.Payload
}

type fakePoster struct {
	posts []post
	err   error
}

func (fp *fakePoster) Post(ctx context.Context, path string, pl nt.Payload) error {
	fp.posts = append(fp.posts, post{ctx: ctx, path: path, pl: pl})
	return fp.err
}

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)            {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

var png = &nt.Attachment{Filename: "a.png", Content: []byte("png")}

func filled(t *testing.T, kind variant.Dialog, v variant.Variant) Dialog {
	t.Helper()

	dlg, err := New(kind, v)
	require.NoError(t, err)

	dlg = dlg.Open()
	for _, fld := range dlg.Spec().Fields {
		if !fld.Image {
			dlg = dlg.Set(fld.Name, "some "+fld.Name)
		}
	}
	dlg.draft = dlg.draft.WithImage(png)
	return dlg
}

func TestNew(t *testing.T) {

	dlg, err := New(variant.EntityDialog, variant.Testimonial())
	require.NoError(t, err)
	assert.True(t, dlg.Enabled())

	dlg, err = New(variant.ImageDialog, variant.Testimonial())
	require.NoError(t, err)
	assert.False(t, dlg.Enabled())
	assert.Equal(t, Closed, dlg.Open().State())

	dlg, err = New(variant.ImageDialog, variant.None())
	require.NoError(t, err)
	assert.False(t, dlg.Enabled())

	_, err = New(variant.ImageDialog, variant.DocImage("brochure"))
	assert.ErrorIs(t, err, variant.ErrInvalidDocType)
}

func TestSubmitMissingFields(t *testing.T) {

	poster := &fakePoster{}

	dlg, err := New(variant.EntityDialog, variant.Testimonial())
	require.NoError(t, err)

	dlg = dlg.Open().
		Set("name", "Alice").
		Set("university", "MIT").
		Set("testimonial", "Great")

	dlg, cmd := dlg.Submit(context.Background(), poster)
	assert.Nil(t, cmd)
	assert.Empty(t, poster.posts)
	assert.Equal(t, Open, dlg.State())
	assert.Contains(t, dlg.ErrText(), "All fields are required")
	assert.Equal(t, "Alice", dlg.Draft().Get("name"))
}

func TestSubmitSuccess(t *testing.T) {

	poster := &fakePoster{}
	dlg := filled(t, variant.EntityDialog, variant.ProjectClient())

	dlg, cmd := dlg.Submit(context.Background(), poster)
	require.NotNil(t, cmd)
	assert.Equal(t, Submitting, dlg.State())
	assert.NotEmpty(t, dlg.Attempt())

	msg, ok := cmd().(DoneMsg)
	require.True(t, ok)
	require.Len(t, poster.posts, 1)
	assert.Equal(t, "/api/project-testi-client", poster.posts[0].path)
	assert.Contains(t, poster.posts[0].pl.ContentType, "multipart/form-data")

	dlg, refetch := dlg.Complete(msg)
	assert.True(t, refetch)
	assert.Equal(t, Closed, dlg.State())
	assert.True(t, dlg.Draft().Empty("name"))
	assert.Empty(t, dlg.ErrText())
}

func TestDoubleSubmit(t *testing.T) {

	poster := &fakePoster{}
	dlg := filled(t, variant.EntityDialog, variant.Testimonial())

	dlg, first := dlg.Submit(context.Background(), poster)
	require.NotNil(t, first)

	dlg, second := dlg.Submit(context.Background(), poster)
	assert.Nil(t, second)
	assert.Equal(t, Submitting, dlg.State())

	dlg = dlg.Set("name", "changed")
	assert.Equal(t, "some name", dlg.Draft().Get("name"))
}

func TestServerMessage(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate"}`))
	}))
	defer srv.Close()

	cfg := &api.Config{BaseUrl: srv.URL}
	clnt, err := cfg.New(nopLogger{})
	require.NoError(t, err)

	dlg := filled(t, variant.EntityDialog, variant.Testimonial())

	dlg, cmd := dlg.Submit(context.Background(), clnt)
	require.NotNil(t, cmd)

	dlg, refetch := dlg.Complete(cmd().(DoneMsg))
	assert.False(t, refetch)
	assert.Equal(t, Open, dlg.State())
	assert.Equal(t, "duplicate", dlg.ErrText())
	assert.Equal(t, "some name", dlg.Draft().Get("name"))
	assert.False(t, dlg.Draft().Empty(nt.ImageField))

	// retry allowed after failure
	_, cmd = dlg.Submit(context.Background(), clnt)
	assert.NotNil(t, cmd)
}

func TestTransportFailure(t *testing.T) {

	poster := &fakePoster{err: errors.New("connection refused")}
	dlg := filled(t, variant.EntityDialog, variant.Testimonial())

	dlg, cmd := dlg.Submit(context.Background(), poster)
	dlg, _ = dlg.Complete(cmd().(DoneMsg))

	assert.Equal(t, Open, dlg.State())
	assert.Equal(t, "Failed to add testimonial", dlg.ErrText())
}

func TestCancelDropsLateAnswer(t *testing.T) {

	poster := &fakePoster{}
	dlg := filled(t, variant.EntityDialog, variant.Testimonial())

	dlg, cmd := dlg.Submit(context.Background(), poster)
	require.NotNil(t, cmd)

	dlg = dlg.Cancel()
	assert.Equal(t, Closed, dlg.State())

	late := cmd().(DoneMsg)
	assert.ErrorIs(t, poster.posts[0].ctx.Err(), context.Canceled)

	dlg = dlg.Open()
	dlg, refetch := dlg.Complete(late)
	assert.False(t, refetch)
	assert.Equal(t, Open, dlg.State())
	assert.True(t, dlg.Draft().Empty("name"))
}

func TestCompleteOtherDialog(t *testing.T) {

	poster := &fakePoster{}
	dlg := filled(t, variant.EntityDialog, variant.Testimonial())

	dlg, cmd := dlg.Submit(context.Background(), poster)
	msg := cmd().(DoneMsg)
	msg.Dialog = variant.ImageDialog

	dlg, refetch := dlg.Complete(msg)
	assert.False(t, refetch)
	assert.Equal(t, Submitting, dlg.State())
}

func TestDocImageEndpoint(t *testing.T) {

	cases := map[variant.DocKind]string{
		variant.Security:    "/api/security-mitra-logos",
		variant.Development: "/api/development-app-logos",
		variant.Dokumentasi: "/api/dokumentasi",
	}

	for kind, endpoint := range cases {
		poster := &fakePoster{}
		dlg := filled(t, variant.ImageDialog, variant.DocImage(kind))

		_, cmd := dlg.Submit(context.Background(), poster)
		require.NotNil(t, cmd)
		cmd()

		require.Len(t, poster.posts, 1)
		assert.Equal(t, endpoint, poster.posts[0].path)
	}
}

func TestAttach(t *testing.T) {

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	dlg, err := New(variant.ImageDialog, variant.DocImage(variant.Security))
	require.NoError(t, err)

	dlg = dlg.Open().Attach(path)
	assert.Empty(t, dlg.ErrText())
	assert.Equal(t, "logo.png", dlg.Draft().Image().Filename)

	dlg = dlg.Attach(filepath.Join(t.TempDir(), "missing.png"))
	assert.Contains(t, dlg.ErrText(), "failed to read image")
	assert.Equal(t, "logo.png", dlg.Draft().Image().Filename)
}

func TestCancelResetsDraft(t *testing.T) {

	dlg := filled(t, variant.EntityDialog, variant.Testimonial())
	dlg = dlg.Cancel().Open()

	assert.Equal(t, Open, dlg.State())
	assert.True(t, dlg.Draft().Empty("name"))
	assert.True(t, dlg.Draft().Empty(nt.ImageField))
}

func TestCompleteWithoutCancel(t *testing.T) {

	dlg, err := New(variant.EntityDialog, variant.Testimonial())
	require.NoError(t, err)

	dlg.state = Submitting
	dlg.attempt = "a1"

	upd, refetch := dlg.Complete(DoneMsg{Dialog: variant.EntityDialog, Attempt: "a1", Err: errors.New("boom")})
	assert.False(t, refetch)
	assert.Equal(t, Open, upd.State())
	assert.Equal(t, "Failed to add testimonial", upd.ErrText())
}
