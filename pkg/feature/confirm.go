package feature

import "context"

// Prompt is the confirmation shown before enabling a feature.
type Prompt struct {
	Question string
	Warning  string
	Accept   string
	Cancel   string
}

// ClientSidePrompt is the confirmation for enabling client-side mode.
var ClientSidePrompt = Prompt{
	Question: "Do you want to enable client-side mode?",
	Warning:  "This may get you banned on servers that do not allow modified clients.",
	Accept:   "Enable",
	Cancel:   "Cancel",
}

// Confirmer asks the user to accept a Prompt.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc implements Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// Always is a Confirmer accepting every Prompt.
var Always Confirmer = ConfirmFunc(func(context.Context, Prompt) (bool, error) { return true, nil })
