// internal/membership/member.go
package membership

import (
	"errors"
	"fmt"
	"strings"

	"libracore/internal/catalog"
)

// ErrInvalidEmail is returned when a member is constructed with an email that
// has no "@", or no "." anywhere after the first "@".
var ErrInvalidEmail = errors.New("invalid email format")

// MaxBorrowed is the number of books a member may hold at once.
const MaxBorrowed = 3

// Member represents a registered library member. The borrowed list holds book
// identifiers in borrow order and never grows past MaxBorrowed.
type Member struct {
	id       string
	name     string
	email    string
	borrowed []string
}

// New creates a Member. initialBorrowed may be nil; when given it is copied,
// so later mutation of the caller's slice does not reach the member.
func New(id, name, email string, initialBorrowed []string) (*Member, error) {
	if !validEmail(email) {
		return nil, fmt.Errorf("member %s: %w", id, ErrInvalidEmail)
	}
	borrowed := make([]string, len(initialBorrowed))
	copy(borrowed, initialBorrowed)
	return &Member{
		id:       id,
		name:     name,
		email:    email,
		borrowed: borrowed,
	}, nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

func (m *Member) ID() string    { return m.id }
func (m *Member) Name() string  { return m.name }
func (m *Member) Email() string { return m.email }

// BorrowedBooks returns a copy of the borrowed book identifiers in borrow
// order. Mutating the returned slice never affects the member.
func (m *Member) BorrowedBooks() []string {
	out := make([]string, len(m.borrowed))
	copy(out, m.borrowed)
	return out
}

// Borrow checks the book out to this member. It refuses (false) when the
// member already holds MaxBorrowed books or the book is unavailable. The book
// identifier is appended only after the book itself confirms the checkout, so
// a refusal leaves both sides untouched.
func (m *Member) Borrow(b *catalog.Book) bool {
	if len(m.borrowed) >= MaxBorrowed {
		return false
	}
	if !b.IsAvailable() {
		return false
	}
	if !b.Checkout() {
		return false
	}
	m.borrowed = append(m.borrowed, b.ID())
	return true
}

// Return hands the book back. It reports false when this member does not hold
// the book; the identifier is removed only after the book confirms the return.
func (m *Member) Return(b *catalog.Book) bool {
	idx := -1
	for i, id := range m.borrowed {
		if id == b.ID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if !b.Return() {
		return false
	}
	m.borrowed = append(m.borrowed[:idx], m.borrowed[idx+1:]...)
	return true
}

// DisplayInfo renders a one-line human-readable description.
func (m *Member) DisplayInfo() string {
	return fmt.Sprintf("%s | %s | %s | Books borrowed: %d", m.id, m.name, m.email, len(m.borrowed))
}
