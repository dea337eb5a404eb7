package driven

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	// Confirm returns true only when the user explicitly agrees.
	Confirm(prompt string) (bool, error)
}
