package domain

import "time"

// DefaultNotebookColor is applied when a notebook is created without an
// explicit color tag.
const DefaultNotebookColor = "#a985ff"

// Notebook groups items. Items reference at most one notebook; deleting a
// notebook unassigns its items rather than deleting them.
type Notebook struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotebook creates a notebook, applying the default color when none is
// given. Returns an error if validation fails.
func NewNotebook(name, color string) (*Notebook, error) {
	if color == "" {
		color = DefaultNotebookColor
	}
	nb := &Notebook{
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := nb.Validate(); err != nil {
		return nil, err
	}
	return nb, nil
}

// Validate checks if the Notebook has valid data.
func (n *Notebook) Validate() error {
	if n.Name == "" {
		return ErrNotebookNameEmpty
	}
	return nil
}
