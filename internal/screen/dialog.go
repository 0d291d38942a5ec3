package screen

const (
	// SaveLabel is the confirm button text.
	SaveLabel = "Save Task"

	// CancelLabel is the cancel button text.
	CancelLabel = "Cancel"

	// Placeholder is shown in an empty input field.
	Placeholder = "New Task"
)

// Dialog is a single-line text prompt.
type Dialog struct {
	Title       string
	Message     string
	Placeholder string
	Initial     string

	save func(text string) error
	done bool
}

// NewDialog builds a dialog that passes confirmed, non-empty text to save.
func NewDialog(title, message, initial string, save func(text string) error) *Dialog {
	return &Dialog{
		Title:       title,
		Message:     message,
		Placeholder: Placeholder,
		Initial:     initial,
		save:        save,
	}
}

// Confirm closes the dialog and saves text. Empty text is discarded.
// A closed dialog ignores further calls.
func (d *Dialog) Confirm(text string) error {
	if d.done {
		return nil
	}
	d.done = true
	if text == "" || d.save == nil {
		return nil
	}
	return d.save(text)
}

// Cancel closes the dialog without saving.
func (d *Dialog) Cancel() { d.done = true }

// Done reports whether the dialog was confirmed or cancelled.
func (d *Dialog) Done() bool { return d.done }
