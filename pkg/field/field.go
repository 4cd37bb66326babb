// Package field implements the protocol version text field
// independent of any UI toolkit.
//
// A host UI forwards text edits to SetText and renders Text,
// Suggestion and Color. Visibility follows the client-side feature flag.
package field

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"

	"go.minekube.com/vselect/pkg/feature"
	"go.minekube.com/vselect/pkg/proto"
	"go.minekube.com/vselect/pkg/resolve"
	"go.minekube.com/vselect/pkg/session"
	"go.minekube.com/vselect/pkg/util/errs"
)

// Options are Field options.
type Options struct {
	// Resolver is required.
	Resolver *resolve.Resolver
	// Session is required and is written after every edit.
	Session *session.Session
	// Flag is required and controls the field visibility.
	Flag *feature.Flag
	// Event is optional.
	Event event.Manager
	// Logger is optional.
	Logger logr.Logger
}

// Field is the version text field state.
type Field struct {
	resolver *resolve.Resolver
	session  *session.Session
	flag     *feature.Flag
	event    event.Manager
	log      logr.Logger

	write  sync.Mutex   // serializes SetText
	mu     sync.RWMutex // protects following fields
	text   string
	result resolve.Result
}

// New returns a new Field showing the protocol currently selected in the session.
func New(opts Options) (*Field, error) {
	if opts.Resolver == nil {
		return nil, errors.New("resolver is missing")
	}
	if opts.Session == nil {
		return nil, errors.New("session is missing")
	}
	if opts.Flag == nil {
		return nil, errors.New("feature flag is missing")
	}
	if opts.Event == nil {
		opts.Event = event.Nop
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	f := &Field{
		resolver: opts.Resolver,
		session:  opts.Session,
		flag:     opts.Flag,
		event:    opts.Event,
		log:      opts.Logger,
	}
	f.SetText(resolve.DisplayText(f.resolver.Registry(), f.session.Protocol()))
	return f, nil
}

// SetText replaces the field text, resolves it and
// writes the resolved protocol to the session.
// Event handlers may read the Field but must not call SetText.
func (f *Field) SetText(text string) resolve.Result {
	f.write.Lock()
	defer f.write.Unlock()

	var res resolve.Result
	f.session.Update(func(prior proto.Protocol) proto.Protocol {
		res = f.resolver.Resolve(text, prior)
		return res.Protocol
	})
	f.mu.Lock()
	f.text = text
	f.result = res
	f.mu.Unlock()

	f.log.V(1).Info("resolved version field",
		"text", text,
		"protocol", res.Protocol,
		"status", res.Status(),
		"suggestion", res.Suggestion)
	f.event.Fire(&ChangedEvent{Text: text, Result: res})
	return res
}

// Text returns the current field text.
func (f *Field) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// Result returns the resolution of the current text.
func (f *Field) Result() resolve.Result {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.result
}

// Suggestion returns the completion to show after the text, if any.
func (f *Field) Suggestion() (string, bool) {
	r := f.Result()
	return r.Suggestion, r.HasSuggestion
}

// Color returns the RGB text color of the current text.
func (f *Field) Color() uint32 {
	return f.Result().Status().Color()
}

// Visible reports whether the field is shown.
func (f *Field) Visible() bool {
	return f.flag.Enabled()
}

// ButtonVisible reports whether the button enabling the field is shown.
func (f *Field) ButtonVisible() bool {
	return !f.Visible()
}

// Enable asks c to confirm and then enables the field.
//
// It returns false and no error if the user declined.
// A failure to persist the flag is returned as an errs.NonFatalError
// and leaves the field hidden.
func (f *Field) Enable(ctx context.Context, c feature.Confirmer) (bool, error) {
	ok, err := c.Confirm(ctx, feature.ClientSidePrompt)
	if err != nil {
		return false, fmt.Errorf("error confirming client-side mode: %w", err)
	}
	if !ok {
		f.log.V(1).Info("client-side mode declined")
		return false, nil
	}
	if err = f.flag.Enable(); err != nil {
		f.log.Error(err, "could not enable client-side mode", "marker", f.flag.Path())
		return false, errs.WrapNonFatal(err)
	}
	f.log.Info("enabled client-side mode", "marker", f.flag.Path())
	f.event.Fire(&EnabledEvent{})
	return true, nil
}

// ChangedEvent is fired after the field text was resolved.
type ChangedEvent struct {
	Text   string
	Result resolve.Result
}

// EnabledEvent is fired after client-side mode was enabled.
type EnabledEvent struct{}
