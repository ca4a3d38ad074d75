package entry

import "time"

// AnnotationStyle controls how an annotation renders in a viewer.
type AnnotationStyle string

const (
	AnnotationStyleHighlight AnnotationStyle = "highlight"
	AnnotationStyleComment   AnnotationStyle = "comment"
	AnnotationStylePin       AnnotationStyle = "pin"
	AnnotationStyleWarning   AnnotationStyle = "warning"
	AnnotationStyleSuccess   AnnotationStyle = "success"
)

// Annotation is a note added during review, soft-referencing the entry it
// comments on (TargetID is checked by the validator as a warning, not a
// hard error — the target may have been trimmed away, spec §3.2 I-6).
type Annotation struct {
	IDValue   string
	TSValue   Timestamp
	TargetID  string
	Content   string
	Author    *string
	Style     *AnnotationStyle
	CreatedAt *time.Time
	Extra     map[string]any
}

func (a *Annotation) ID() string    { return a.IDValue }
func (a *Annotation) TS() Timestamp { return a.TSValue }
func (a *Annotation) Kind() Type    { return TypeAnnotation }

type annotationWire struct {
	ID        string           `json:"id"`
	TS        Timestamp        `json:"ts"`
	TargetID  string           `json:"target_id"`
	Content   string           `json:"content"`
	Author    *string          `json:"author,omitempty"`
	Style     *AnnotationStyle `json:"style,omitempty"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
}

var annotationKnownKeys = []string{"id", "ts", "target_id", "content", "author", "style", "created_at"}

func (a *Annotation) MarshalJSON() ([]byte, error) {
	w := annotationWire{a.IDValue, a.TSValue, a.TargetID, a.Content, a.Author, a.Style, a.CreatedAt}
	return marshalTagged(TypeAnnotation, w, a.Extra)
}

func (a *Annotation) UnmarshalJSON(data []byte) error {
	var w annotationWire
	extra, err := unmarshalTagged(data, &w, annotationKnownKeys)
	if err != nil {
		return err
	}
	*a = Annotation{w.ID, w.TS, w.TargetID, w.Content, w.Author, w.Style, w.CreatedAt, extra}
	return nil
}
