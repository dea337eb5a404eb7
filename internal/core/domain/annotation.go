package domain

// DeleteConfirmPrompt is asked before an annotation and its replies are deleted.
const DeleteConfirmPrompt = "Are you sure you want to delete this entire annotation block and all its replies?"

// Annotation is a highlighted text range on one page with threaded replies.
type Annotation struct {
	// ID is a time-based identifier, unique within the store.
	ID int64 `json:"id"`

	// Text is the sanitised selected text. Immutable after creation.
	Text string `json:"text"`

	// PageNumber is 1-based.
	PageNumber int `json:"pageNumber"`

	// Rects are page-local at the capture scale. Never empty.
	Rects []Rect `json:"rects"`

	// Replies are ordered comments attached to the annotation.
	Replies []string `json:"replies"`

	// Scale is the render scale the rects were captured at.
	// Zero means the rects match the current render scale.
	Scale float64 `json:"scale,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store state.
func (a Annotation) Clone() Annotation {
	c := a
	c.Rects = append([]Rect(nil), a.Rects...)
	c.Replies = append([]string{}, a.Replies...)
	return c
}

// FirstRect returns the first rect, or a zero rect when there is none.
func (a Annotation) FirstRect() Rect {
	if len(a.Rects) == 0 {
		return Rect{}
	}
	return a.Rects[0]
}

// Valid reports whether the annotation satisfies the record invariants.
// Used when hydrating persisted data.
func (a Annotation) Valid() bool {
	if a.ID <= 0 || a.Text == "" || a.PageNumber < 1 || len(a.Rects) == 0 {
		return false
	}
	for _, r := range a.Rects {
		if r.IsDegenerate() {
			return false
		}
	}
	return true
}

// SelectionMeta is the page attribution of a text selection.
type SelectionMeta struct {
	PageNumber int
	Rects      []Rect
}
