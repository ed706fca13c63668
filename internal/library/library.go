// internal/library/library.go
package library

import (
	"strings"
	"sync"

	"libracore/internal/catalog"
	"libracore/internal/membership"
)

// Library owns the book and member collections, keyed by identifier, and
// orchestrates checkout, return and search across them. The core contract is
// single-actor; the per-instance lock exists so the HTTP surface may serve
// concurrent callers without corrupting the maps.
type Library struct {
	mu      sync.RWMutex
	name    string
	address string

	books    map[string]*catalog.Book
	members  map[string]*membership.Member
	counters *Counters
}

// New creates an empty Library. The counters are shared state: every Library
// constructed with the same Counters contributes to the same totals.
func New(name, address string, counters *Counters) *Library {
	return &Library{
		name:     name,
		address:  address,
		books:    make(map[string]*catalog.Book),
		members:  make(map[string]*membership.Member),
		counters: counters,
	}
}

func (l *Library) Name() string    { return l.name }
func (l *Library) Address() string { return l.address }

// BookCount returns the shared total of books ever added.
func (l *Library) BookCount() int { return l.counters.Books() }

// MemberCount returns the shared total of members ever added.
func (l *Library) MemberCount() int { return l.counters.Members() }

// AddBook registers a book. It reports false, without mutating anything or
// touching the counter, when the identifier is already present.
func (l *Library) AddBook(b *catalog.Book) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.books[b.ID()]; exists {
		return false
	}
	l.books[b.ID()] = b
	l.counters.books.Add(1)
	return true
}

// AddMember registers a member, symmetric to AddBook.
func (l *Library) AddMember(m *membership.Member) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.members[m.ID()]; exists {
		return false
	}
	l.members[m.ID()] = m
	l.counters.members.Add(1)
	return true
}

// CheckoutBook looks up both parties and delegates to the member's borrowing
// policy. Missing identifiers refuse the checkout; no state changes on any
// refusal.
func (l *Library) CheckoutBook(bookID, memberID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.books[bookID]
	if !ok {
		return false
	}
	m, ok := l.members[memberID]
	if !ok {
		return false
	}
	return m.Borrow(b)
}

// ReturnBook looks up both parties and delegates to the member's return
// policy, symmetric to CheckoutBook.
func (l *Library) ReturnBook(bookID, memberID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.books[bookID]
	if !ok {
		return false
	}
	m, ok := l.members[memberID]
	if !ok {
		return false
	}
	return m.Return(b)
}

// AvailableBooks returns a new map holding only the currently available books.
func (l *Library) AvailableBooks() map[string]*catalog.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.availableBooksLocked()
}

func (l *Library) availableBooksLocked() map[string]*catalog.Book {
	out := make(map[string]*catalog.Book)
	for id, b := range l.books {
		if b.IsAvailable() {
			out[id] = b
		}
	}
	return out
}

// SearchByTitle returns the books whose title contains the query,
// case-insensitively. The empty query matches every book.
func (l *Library) SearchByTitle(query string) map[string]*catalog.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.searchByTitleLocked(query)
}

func (l *Library) searchByTitleLocked(query string) map[string]*catalog.Book {
	query = strings.ToLower(query)
	out := make(map[string]*catalog.Book)
	for id, b := range l.books {
		if strings.Contains(strings.ToLower(b.Title()), query) {
			out[id] = b
		}
	}
	return out
}

// SearchByAuthor returns the books whose author name contains the query as a
// whole whitespace-separated token, case-insensitively. Unlike title search
// this is not a substring match, so the empty query matches nothing.
func (l *Library) SearchByAuthor(query string) map[string]*catalog.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.searchByAuthorLocked(query)
}

func (l *Library) searchByAuthorLocked(query string) map[string]*catalog.Book {
	query = strings.ToLower(query)
	out := make(map[string]*catalog.Book)
	for id, b := range l.books {
		for _, token := range strings.Fields(strings.ToLower(b.Author())) {
			if token == query {
				out[id] = b
				break
			}
		}
	}
	return out
}

// GetBook returns the stored book and whether it exists.
func (l *Library) GetBook(id string) (*catalog.Book, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books[id]
	return b, ok
}

// GetMember returns the stored member and whether it exists.
func (l *Library) GetMember(id string) (*membership.Member, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.members[id]
	return m, ok
}

// AllBooks returns a shallow copy of the book map. The entries are the stored
// books themselves; the map may be mutated freely.
func (l *Library) AllBooks() map[string]*catalog.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]*catalog.Book, len(l.books))
	for id, b := range l.books {
		out[id] = b
	}
	return out
}

// AllMembers returns a shallow copy of the member map.
func (l *Library) AllMembers() map[string]*membership.Member {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]*membership.Member, len(l.members))
	for id, m := range l.members {
		out[id] = m
	}
	return out
}
