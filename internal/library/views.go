// internal/library/views.go
package library

import (
	"libracore/internal/catalog"
	"libracore/internal/membership"
)

// BookView is a point-in-time copy of a book's state, taken under the
// library lock so concurrent readers never observe a half-applied checkout.
// The HTTP surface serves views; the pointer-returning accessors remain the
// single-actor core contract.
type BookView struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publication_year"`
	Available       bool   `json:"available"`
	Kind            string `json:"kind"`
	FictionType     string `json:"fiction_type,omitempty"`
	Subject         string `json:"subject,omitempty"`
}

// MemberView is a point-in-time copy of a member's state.
type MemberView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	BorrowedBooks []string `json:"borrowed_books"`
}

// newBookView copies the book's state. The caller must hold the library lock.
func newBookView(b *catalog.Book) BookView {
	return BookView{
		ID:              b.ID(),
		Title:           b.Title(),
		Author:          b.Author(),
		Genre:           b.Genre(),
		PublicationYear: b.PublicationYear(),
		Available:       b.IsAvailable(),
		Kind:            string(b.Kind()),
		FictionType:     b.FictionType(),
		Subject:         b.Subject(),
	}
}

// newMemberView copies the member's state. The caller must hold the library
// lock.
func newMemberView(m *membership.Member) MemberView {
	return MemberView{
		ID:            m.ID(),
		Name:          m.Name(),
		Email:         m.Email(),
		BorrowedBooks: m.BorrowedBooks(),
	}
}

func newBookViewMap(books map[string]*catalog.Book) map[string]BookView {
	out := make(map[string]BookView, len(books))
	for id, b := range books {
		out[id] = newBookView(b)
	}
	return out
}

// ViewBook returns a copy of the book's current state.
func (l *Library) ViewBook(id string) (BookView, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books[id]
	if !ok {
		return BookView{}, false
	}
	return newBookView(b), true
}

// ViewMember returns a copy of the member's current state.
func (l *Library) ViewMember(id string) (MemberView, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.members[id]
	if !ok {
		return MemberView{}, false
	}
	return newMemberView(m), true
}

// ViewAllBooks returns copies of every book's current state.
func (l *Library) ViewAllBooks() map[string]BookView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return newBookViewMap(l.books)
}

// ViewAvailableBooks returns copies of the currently available books.
func (l *Library) ViewAvailableBooks() map[string]BookView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return newBookViewMap(l.availableBooksLocked())
}

// ViewSearchByTitle runs the title search and returns copies of the matches.
func (l *Library) ViewSearchByTitle(query string) map[string]BookView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return newBookViewMap(l.searchByTitleLocked(query))
}

// ViewSearchByAuthor runs the author search and returns copies of the
// matches.
func (l *Library) ViewSearchByAuthor(query string) map[string]BookView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return newBookViewMap(l.searchByAuthorLocked(query))
}

// ViewAllMembers returns copies of every member's current state.
func (l *Library) ViewAllMembers() map[string]MemberView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]MemberView, len(l.members))
	for id, m := range l.members {
		out[id] = newMemberView(m)
	}
	return out
}
