package domain

import (
	"slices"
	"time"
)

// Booklist is a customer-owned reading list. Books are embedded by value,
// not referenced, so a list survives catalog changes until the propagator
// reconciles its copies. BookCount always equals len(Books) after any
// mutation completes.
type Booklist struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CustomerID string    `json:"customer_id"`
	Tags       []string  `json:"tags,omitempty"`
	Books      []Book    `json:"books"`
	BookCount  int       `json:"book_count"`
}

// AddBook appends an embedded copy of the book to the end of the list.
// No dedup check: the same book may be appended more than once.
func (l *Booklist) AddBook(b Book) {
	l.Books = append(l.Books, b.Clone())
	l.BookCount = len(l.Books)
}

// RemoveBook removes the first embedded book with the given asin.
// Returns false if no embedded book has that asin.
func (l *Booklist) RemoveBook(asin string) bool {
	for i := range l.Books {
		if l.Books[i].Asin == asin {
			l.Books = slices.Delete(l.Books, i, i+1)
			l.BookCount = len(l.Books)
			return true
		}
	}
	return false
}

// ReplaceBook overwrites every embedded copy identity-equal to original
// with a copy of updated, preserving positions. Copies already value-equal
// to updated are left alone, so replaying the same (original, updated)
// pair replaces nothing. Returns the number of copies replaced; zero means
// the list did not change.
func (l *Booklist) ReplaceBook(original, updated *Book) int {
	replaced := 0
	for i := range l.Books {
		if !l.Books[i].Same(original) {
			continue
		}
		if l.Books[i].Equal(updated) {
			continue
		}
		l.Books[i] = updated.Clone()
		replaced++
	}
	return replaced
}

// ContainsSame reports whether the list embeds a copy identity-equal to b.
func (l *Booklist) ContainsSame(b *Book) bool {
	for i := range l.Books {
		if l.Books[i].Same(b) {
			return true
		}
	}
	return false
}

// CopyBooks returns a defensive deep copy of the embedded books.
func (l *Booklist) CopyBooks() []Book {
	books := make([]Book, len(l.Books))
	for i := range l.Books {
		books[i] = l.Books[i].Clone()
	}
	return books
}

// CopyTags returns a defensive copy of the tag set.
func (l *Booklist) CopyTags() []string {
	return slices.Clone(l.Tags)
}

// NormalizeTags dedupes tags preserving first-seen order.
// Tags have set semantics but are stored as a slice for stable JSON.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}
