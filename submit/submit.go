// Package submit drives a creation dialog from open through to the server's answer.
package submit

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"

	"dasbor/api"
	nt "dasbor/entity"
	"dasbor/variant"
)

// Poster sends a create request.
type Poster interface {
	Post(ctx context.Context, path string, pl nt.Payload) error
}

// State is where a dialog is in its lifecycle.
type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (st State) String() string {

	switch st {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	}
	return "closed"
}

// DoneMsg carries the outcome of a submission back to the dialog that sent it.
type DoneMsg struct {
	Dialog  variant.Dialog
	Attempt string
	Err     error
}

// Dialog is one creation dialog of a table.
// Only one request may be in flight and a late answer for a cancelled attempt is dropped.
type Dialog struct {
	kind    variant.Dialog
	spec    variant.Spec
	enabled bool

	state   State
	draft   nt.Draft
	errText string

	attempt string
	cancel  context.CancelFunc
}

// New creates a dialog of kind for v.
// The dialog is disabled when v creates through some other dialog, or not at all.
func New(kind variant.Dialog, v variant.Variant) (dlg Dialog, err error) {

	dlg = Dialog{
		kind:  kind,
		draft: nt.NewDraft(),
	}
	if v.IsNone() {
		return
	}

	spec, err := variant.Resolve(v)
	if err != nil {
		err = errors.Wrapf(err, "failed to resolve %s dialog", kind)
		return
	}

	dlg.spec = spec
	dlg.enabled = spec.Reachable(kind)
	return
}

// Kind returns which of the table's dialogs this is.
func (dlg Dialog) Kind() variant.Dialog {
	return dlg.kind
}

// Spec returns the resolved variant.
func (dlg Dialog) Spec() variant.Spec {
	return dlg.spec
}

// Enabled reports whether the dialog can be opened at all.
func (dlg Dialog) Enabled() bool {
	return dlg.enabled
}

// State returns the lifecycle state.
func (dlg Dialog) State() State {
	return dlg.state
}

// Visible reports whether the dialog is on screen.
func (dlg Dialog) Visible() bool {
	return dlg.state != Closed
}

// Draft returns the pending form values.
func (dlg Dialog) Draft() nt.Draft {
	return dlg.draft
}

// ErrText returns the message from the last failed submit, if any.
func (dlg Dialog) ErrText() string {
	return dlg.errText
}

// Attempt returns the id of the request in flight, if any.
func (dlg Dialog) Attempt() string {
	return dlg.attempt
}

// Open shows the dialog with an empty draft.
func (dlg Dialog) Open() Dialog {

	if !dlg.enabled || dlg.state != Closed {
		return dlg
	}

	dlg.state = Open
	dlg.draft = nt.NewDraft()
	dlg.errText = ""
	return dlg
}

// Cancel closes the dialog, discarding the draft and abandoning any request in flight.
func (dlg Dialog) Cancel() Dialog {

	if dlg.state == Closed {
		return dlg
	}
	if dlg.cancel != nil {
		dlg.cancel()
	}

	return dlg.reset()
}

// Set updates a text field of the draft.
func (dlg Dialog) Set(field, value string) Dialog {

	if dlg.state != Open {
		return dlg
	}

	dlg.draft = dlg.draft.With(field, value)
	return dlg
}

// Attach reads an image into the draft, reporting trouble in ErrText.
func (dlg Dialog) Attach(path string) Dialog {

	if dlg.state != Open {
		return dlg
	}

	att, err := nt.ReadAttachment(path)
	if err != nil {
		dlg.errText = err.Error()
		return dlg
	}

	dlg.draft = dlg.draft.WithImage(att)
	dlg.errText = ""
	return dlg
}

// Detach drops any image read into the draft.
func (dlg Dialog) Detach() Dialog {

	if dlg.state != Open {
		return dlg
	}

	dlg.draft = dlg.draft.WithImage(nil)
	return dlg
}

// Submit validates the draft and returns a command posting it.
// Nothing is sent when validation fails or a request is already in flight.
func (dlg Dialog) Submit(ctx context.Context, poster Poster) (Dialog, tea.Cmd) {

	if dlg.state != Open {
		return dlg, nil
	}

	pl, err := dlg.spec.Payload(dlg.draft)
	if err != nil {
		dlg.errText = err.Error()
		return dlg, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	attempt := xid.New().String()
	kind := dlg.kind
	endpoint := dlg.spec.Endpoint

	dlg.state = Submitting
	dlg.errText = ""
	dlg.attempt = attempt
	dlg.cancel = cancel

	return dlg, func() tea.Msg {
		err := poster.Post(ctx, endpoint, pl)
		return DoneMsg{Dialog: kind, Attempt: attempt, Err: err}
	}
}

// Complete applies the outcome of a submission.
// refetch is true when a resource was created and the caller's rows are stale.
func (dlg Dialog) Complete(msg DoneMsg) (upd Dialog, refetch bool) {

	if msg.Dialog != dlg.kind || dlg.state != Submitting || msg.Attempt != dlg.attempt {
		return dlg, false
	}
	if dlg.cancel != nil {
		dlg.cancel()
	}

	if msg.Err == nil {
		return dlg.reset(), true
	}

	dlg.state = Open
	dlg.attempt = ""
	dlg.cancel = nil
	dlg.errText = FailureText(dlg.spec, msg.Err)
	return dlg, false
}

// FailureText is what to show for a failed create:
// the server's message when it gave one, a generic line otherwise.
func FailureText(spec variant.Spec, err error) string {

	if msg, ok := api.Message(err); ok {
		return msg
	}
	return fmt.Sprintf("Failed to add %s", spec.Noun)
}

// unexported

func (dlg Dialog) reset() Dialog {

	dlg.state = Closed
	dlg.draft = nt.NewDraft()
	dlg.errText = ""
	dlg.attempt = ""
	dlg.cancel = nil
	return dlg
}
