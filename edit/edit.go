// Package edit holds the draft of an in-progress update to an existing row.
//
// Edit state lives beside the rows rather than in them: Inline tracks which
// single row is being edited, Modal is seeded from one selected entity.
package edit

import (
	"context"
	"maps"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"

	nt "dasbor/entity"
)

var ErrNotSeeded = errors.New("edit draft is not fully seeded")

// SaveFunc persists a draft as the new state of row id.
type SaveFunc func(ctx context.Context, id int, dft nt.Draft) error

// SavedMsg carries the outcome of a save back to its session.
type SavedMsg struct {
	Owner   string
	Attempt string
	Err     error
}

// session is the lifecycle common to both edit styles.
type session struct {
	id      int
	active  bool
	draft   nt.Draft
	errText string
	attempt string
	cancel  context.CancelFunc
}

func (ses session) begin(id int, seed map[string]string) session {

	ses = ses.end()
	ses.id = id
	ses.active = true
	ses.draft = nt.SeedDraft(seed)
	return ses
}

func (ses session) end() session {

	if ses.cancel != nil {
		ses.cancel()
	}
	return session{draft: nt.NewDraft()}
}

func (ses session) set(field, value string) session {

	if !ses.active || ses.attempt != "" {
		return ses
	}
	ses.draft = ses.draft.With(field, value)
	return ses
}

func (ses session) save(ctx context.Context, owner string, save SaveFunc) (session, tea.Cmd) {

	if !ses.active || ses.attempt != "" {
		return ses, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	attempt := xid.New().String()
	id := ses.id
	dft := ses.draft

	ses.attempt = attempt
	ses.cancel = cancel
	ses.errText = ""

	return ses, func() tea.Msg {
		err := save(ctx, id, dft)
		return SavedMsg{Owner: owner, Attempt: attempt, Err: err}
	}
}

func (ses session) complete(msg SavedMsg) (session, bool) {

	if !ses.active || msg.Attempt == "" || msg.Attempt != ses.attempt {
		return ses, false
	}

	if msg.Err == nil {
		return ses.end(), true
	}

	if ses.cancel != nil {
		ses.cancel()
	}
	ses.cancel = nil
	ses.attempt = ""
	ses.errText = msg.Err.Error()
	return ses, false
}

// Inline edits one row in place, at most one row at a time.
type Inline struct {
	ses session
}

// Begin puts row id in edit mode, leaving any other row.
func (in Inline) Begin(id int, seed map[string]string) Inline {

	in.ses = in.ses.begin(id, seed)
	return in
}

// Editing returns the id of the row in edit mode.
func (in Inline) Editing() (id int, ok bool) {
	return in.ses.id, in.ses.active
}

// IsEditing reports whether row id is in edit mode.
func (in Inline) IsEditing(id int) bool {
	return in.ses.active && in.ses.id == id
}

// Saving reports whether a save is in flight.
func (in Inline) Saving() bool {
	return in.ses.attempt != ""
}

// Draft returns the pending values.
func (in Inline) Draft() nt.Draft {
	return in.ses.draft
}

// ErrText returns the message from a failed save, if any.
func (in Inline) ErrText() string {
	return in.ses.errText
}

// Set updates a field of the draft.
func (in Inline) Set(field, value string) Inline {

	in.ses = in.ses.set(field, value)
	return in
}

// Fail reports a problem found before saving.
func (in Inline) Fail(err error) Inline {

	in.ses.errText = err.Error()
	return in
}

// Cancel leaves edit mode, discarding the draft.
func (in Inline) Cancel() Inline {

	in.ses = in.ses.end()
	return in
}

// Save returns a command persisting the draft.
func (in Inline) Save(ctx context.Context, owner string, save SaveFunc) (Inline, tea.Cmd) {

	var cmd tea.Cmd
	in.ses, cmd = in.ses.save(ctx, owner, save)
	return in, cmd
}

// Complete applies the outcome of a save, saved being true on success.
func (in Inline) Complete(msg SavedMsg) (upd Inline, saved bool) {

	in.ses, saved = in.ses.complete(msg)
	return in, saved
}

// Modal edits the selected entity in a dialog.
type Modal struct {
	ses    session
	fields []string
}

// NewModal creates a modal editing fields.
func NewModal(fields ...string) Modal {
	return Modal{fields: fields}
}

// Open shows the dialog for entity id.
// Every field must be present in seed so the draft starts as the entity's current state.
func (mdl Modal) Open(id int, seed map[string]string) (upd Modal, err error) {

	missing := []string{}
	for _, field := range mdl.fields {
		if _, ok := seed[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		err = errors.Wrapf(ErrNotSeeded, "missing %v", missing)
		return mdl, err
	}

	mdl.ses = mdl.ses.begin(id, maps.Clone(seed))
	return mdl, nil
}

// Visible reports whether the dialog is on screen.
func (mdl Modal) Visible() bool {
	return mdl.ses.active
}

// Id returns the entity being edited.
func (mdl Modal) Id() int {
	return mdl.ses.id
}

// Fields returns the editable fields.
func (mdl Modal) Fields() []string {
	return mdl.fields
}

// Saving reports whether a save is in flight.
func (mdl Modal) Saving() bool {
	return mdl.ses.attempt != ""
}

// Draft returns the pending values.
func (mdl Modal) Draft() nt.Draft {
	return mdl.ses.draft
}

// ErrText returns the message from a failed save, if any.
func (mdl Modal) ErrText() string {
	return mdl.ses.errText
}

// Set updates a field of the draft.
func (mdl Modal) Set(field, value string) Modal {

	mdl.ses = mdl.ses.set(field, value)
	return mdl
}

// Attach reads a replacement image into the draft.
func (mdl Modal) Attach(path string) Modal {

	if !mdl.ses.active || mdl.ses.attempt != "" {
		return mdl
	}

	att, err := nt.ReadAttachment(path)
	if err != nil {
		mdl.ses.errText = err.Error()
		return mdl
	}

	mdl.ses.draft = mdl.ses.draft.WithImage(att)
	mdl.ses.errText = ""
	return mdl
}

// Detach drops any replacement image from the draft.
func (mdl Modal) Detach() Modal {

	if !mdl.ses.active || mdl.ses.attempt != "" {
		return mdl
	}

	mdl.ses.draft = mdl.ses.draft.WithImage(nil)
	return mdl
}

// Fail reports a problem found before saving.
func (mdl Modal) Fail(err error) Modal {

	mdl.ses.errText = err.Error()
	return mdl
}

// Cancel closes the dialog, discarding the draft and any save in flight.
func (mdl Modal) Cancel() Modal {

	mdl.ses = mdl.ses.end()
	return mdl
}

// Save returns a command persisting the draft.
func (mdl Modal) Save(ctx context.Context, owner string, save SaveFunc) (Modal, tea.Cmd) {

	var cmd tea.Cmd
	mdl.ses, cmd = mdl.ses.save(ctx, owner, save)
	return mdl, cmd
}

// Complete applies the outcome of a save, saved being true on success.
func (mdl Modal) Complete(msg SavedMsg) (upd Modal, saved bool) {

	mdl.ses, saved = mdl.ses.complete(msg)
	return mdl, saved
}
