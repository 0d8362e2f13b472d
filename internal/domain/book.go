// Package domain defines the core aggregates for the BookTrack service.
package domain

// Book is the canonical catalog entity, keyed by ASIN.
//
// Rating, CurrentlyReading, PercentComplete, and PageCount are pointers so
// the absent state survives storage round-trips. A nil pointer means "never
// set"; collapsing it into a zero value would erase ratings and progress on
// every partial update.
type Book struct {
	Asin             string `json:"asin"`
	Title            string `json:"title"`
	Author           string `json:"author"`
	Genre            string `json:"genre,omitempty"`
	Thumbnail        string `json:"thumbnail,omitempty"`
	Rating           *int   `json:"rating,omitempty"`
	CurrentlyReading *bool  `json:"currently_reading,omitempty"`
	PercentComplete  *int   `json:"percent_complete,omitempty"`
	PageCount        *int   `json:"page_count,omitempty"`
}

// Same reports whether two books are the same logical book.
// Identity is the (asin, title, author) triple; other fields may differ.
// This is what locates a stale embedded copy inside a booklist.
func (b *Book) Same(other *Book) bool {
	return b.Asin == other.Asin && b.Title == other.Title && b.Author == other.Author
}

// Equal reports whether two books carry the same value in every field,
// optional pointers included (nil only equals nil). A copy equal to the
// updated value needs no rewrite.
func (b *Book) Equal(other *Book) bool {
	return b.Asin == other.Asin &&
		b.Title == other.Title &&
		b.Author == other.Author &&
		b.Genre == other.Genre &&
		b.Thumbnail == other.Thumbnail &&
		ptrEqual(b.Rating, other.Rating) &&
		ptrEqual(b.CurrentlyReading, other.CurrentlyReading) &&
		ptrEqual(b.PercentComplete, other.PercentComplete) &&
		ptrEqual(b.PageCount, other.PageCount)
}

// Clone returns a deep copy of the book, including its optional fields.
func (b *Book) Clone() Book {
	c := *b
	c.Rating = clonePtr(b.Rating)
	c.CurrentlyReading = clonePtr(b.CurrentlyReading)
	c.PercentComplete = clonePtr(b.PercentComplete)
	c.PageCount = clonePtr(b.PageCount)
	return c
}

// IsCurrentlyReading reports whether the currently-reading flag is set and true.
func (b *Book) IsCurrentlyReading() bool {
	return b.CurrentlyReading != nil && *b.CurrentlyReading
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// BookPatch carries a partial update to a book's reading progress.
// A nil field was not provided by the caller and must leave the stored
// value untouched; there is no way to unset a field through a patch.
type BookPatch struct {
	Rating           *int  `json:"rating,omitempty"`
	CurrentlyReading *bool `json:"currently_reading,omitempty"`
	PercentComplete  *int  `json:"percent_complete,omitempty"`
}

// Apply overwrites only the fields present in the patch.
func (p *BookPatch) Apply(b *Book) {
	if p.Rating != nil {
		b.Rating = clonePtr(p.Rating)
	}
	if p.CurrentlyReading != nil {
		b.CurrentlyReading = clonePtr(p.CurrentlyReading)
	}
	if p.PercentComplete != nil {
		b.PercentComplete = clonePtr(p.PercentComplete)
	}
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *BookPatch) IsEmpty() bool {
	return p.Rating == nil && p.CurrentlyReading == nil && p.PercentComplete == nil
}
