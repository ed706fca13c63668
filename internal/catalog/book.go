// internal/catalog/book.go
package catalog

import (
	"errors"
	"fmt"
	"time"
)

// ErrYearInFuture is returned when a book is constructed with a publication
// year later than the current calendar year.
var ErrYearInFuture = errors.New("publication year cannot be in the future")

// Kind tags the variant of a Book.
type Kind string

const (
	KindBase       Kind = "base"
	KindFiction    Kind = "fiction"
	KindNonFiction Kind = "nonfiction"
)

// Book represents a single catalog item. Fiction and non-fiction variants
// carry one extra attribute each, selected by the Kind tag. Availability
// changes only through Checkout and Return.
type Book struct {
	id              string
	title           string
	author          string
	genre           string
	publicationYear int
	available       bool

	kind        Kind
	fictionType string // set when kind == KindFiction
	subject     string // set when kind == KindNonFiction
}

// Option adjusts a Book at construction time.
type Option func(*Book)

// WithAvailability sets the initial availability. Books are available by
// default; pass false to construct one already checked out.
func WithAvailability(available bool) Option {
	return func(b *Book) { b.available = available }
}

// New creates a base Book. The publication year must not be later than the
// current calendar year. New books start out available unless an option says
// otherwise.
func New(id, title, author, genre string, publicationYear int, opts ...Option) (*Book, error) {
	if publicationYear > time.Now().Year() {
		return nil, fmt.Errorf("book %s: %w", id, ErrYearInFuture)
	}
	b := &Book{
		id:              id,
		title:           title,
		author:          author,
		genre:           genre,
		publicationYear: publicationYear,
		available:       true,
		kind:            KindBase,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewFiction creates a Book carrying a fiction classification.
func NewFiction(id, title, author, genre string, publicationYear int, fictionType string, opts ...Option) (*Book, error) {
	b, err := New(id, title, author, genre, publicationYear, opts...)
	if err != nil {
		return nil, err
	}
	b.kind = KindFiction
	b.fictionType = fictionType
	return b, nil
}

// NewNonFiction creates a Book carrying a subject.
func NewNonFiction(id, title, author, genre string, publicationYear int, subject string, opts ...Option) (*Book, error) {
	b, err := New(id, title, author, genre, publicationYear, opts...)
	if err != nil {
		return nil, err
	}
	b.kind = KindNonFiction
	b.subject = subject
	return b, nil
}

func (b *Book) ID() string           { return b.id }
func (b *Book) Title() string        { return b.title }
func (b *Book) Author() string       { return b.author }
func (b *Book) Genre() string        { return b.genre }
func (b *Book) PublicationYear() int { return b.publicationYear }
func (b *Book) Kind() Kind           { return b.kind }

// FictionType returns the fiction classification; empty for other kinds.
func (b *Book) FictionType() string { return b.fictionType }

// Subject returns the non-fiction subject; empty for other kinds.
func (b *Book) Subject() string { return b.subject }

// IsAvailable reports whether the book is currently on the shelf.
func (b *Book) IsAvailable() bool { return b.available }

// Checkout marks the book as checked out. It reports false, without changing
// state, when the book is already checked out.
func (b *Book) Checkout() bool {
	if !b.available {
		return false
	}
	b.available = false
	return true
}

// Return marks the book as available again. It reports false, without
// changing state, when the book was not checked out.
func (b *Book) Return() bool {
	if b.available {
		return false
	}
	b.available = true
	return true
}

// DisplayInfo renders a one-line human-readable description. Variants append
// their extra attribute to the base line.
func (b *Book) DisplayInfo() string {
	availability := "Available"
	if !b.available {
		availability = "Checked Out"
	}
	info := fmt.Sprintf("%s | %s by %s | %s | %d | %s",
		b.id, b.title, b.author, b.genre, b.publicationYear, availability)
	switch b.kind {
	case KindFiction:
		info = fmt.Sprintf("%s | Type: %s", info, b.fictionType)
	case KindNonFiction:
		info = fmt.Sprintf("%s | Subject: %s", info, b.subject)
	}
	return info
}
