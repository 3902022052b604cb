package model

// Genre classifies movies. Titles are unique across all genres; the
// service layer checks the rule proactively so the form layer can tag
// the offending field, and the DB unique index backs it up.
type Genre struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
}
