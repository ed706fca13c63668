// internal/library/property_test.go
package library

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"libracore/internal/catalog"
	"libracore/internal/membership"
)

// Random interleavings of checkout and return must preserve the aggregate
// invariants: no member over the borrow limit, a book unavailable exactly
// when one member holds it, and counters equal to the number of entities
// ever added.
func TestCheckoutReturnInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counters := NewCounters()
		lib := New("City Public Library", "123 Main St", counters)

		numBooks := rapid.IntRange(1, 6).Draw(t, "numBooks")
		numMembers := rapid.IntRange(1, 4).Draw(t, "numMembers")

		bookIDs := make([]string, numBooks)
		for i := range bookIDs {
			bookIDs[i] = fmt.Sprintf("B%03d", i+1)
			b, err := catalog.New(bookIDs[i], "Title "+bookIDs[i], "Some Author", "Fiction", 2000)
			if err != nil {
				t.Fatalf("construct book: %v", err)
			}
			if !lib.AddBook(b) {
				t.Fatalf("add book %s refused", bookIDs[i])
			}
		}
		memberIDs := make([]string, numMembers)
		for i := range memberIDs {
			memberIDs[i] = fmt.Sprintf("M%03d", i+1)
			m, err := membership.New(memberIDs[i], "Member "+memberIDs[i], "m@example.com", nil)
			if err != nil {
				t.Fatalf("construct member: %v", err)
			}
			if !lib.AddMember(m) {
				t.Fatalf("add member %s refused", memberIDs[i])
			}
		}

		steps := rapid.IntRange(0, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			bookID := rapid.SampledFrom(bookIDs).Draw(t, "bookID")
			memberID := rapid.SampledFrom(memberIDs).Draw(t, "memberID")
			if rapid.Bool().Draw(t, "checkout") {
				lib.CheckoutBook(bookID, memberID)
			} else {
				lib.ReturnBook(bookID, memberID)
			}
		}

		holders := make(map[string]int)
		for _, m := range lib.AllMembers() {
			borrowed := m.BorrowedBooks()
			if len(borrowed) > membership.MaxBorrowed {
				t.Fatalf("member %s holds %d books", m.ID(), len(borrowed))
			}
			seen := make(map[string]bool)
			for _, id := range borrowed {
				if seen[id] {
					t.Fatalf("member %s holds %s twice", m.ID(), id)
				}
				seen[id] = true
				holders[id]++
			}
		}
		for id, b := range lib.AllBooks() {
			switch holders[id] {
			case 0:
				if !b.IsAvailable() {
					t.Fatalf("book %s checked out but held by nobody", id)
				}
			case 1:
				if b.IsAvailable() {
					t.Fatalf("book %s available but held by a member", id)
				}
			default:
				t.Fatalf("book %s held by %d members", id, holders[id])
			}
		}

		if counters.Books() != numBooks || counters.Members() != numMembers {
			t.Fatalf("counters drifted: books=%d members=%d", counters.Books(), counters.Members())
		}
	})
}

// A successful checkout followed by its return leaves the graph
// indistinguishable from before the checkout.
func TestCheckoutReturnRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counters := NewCounters()
		lib := New("City Public Library", "123 Main St", counters)

		b, err := catalog.New("B001", "1984", "George Orwell", "Fiction", 1949)
		if err != nil {
			t.Fatalf("construct book: %v", err)
		}
		lib.AddBook(b)

		preHeld := rapid.IntRange(0, membership.MaxBorrowed-1).Draw(t, "preHeld")
		m, err := membership.New("M001", "John Smith", "john@example.com", nil)
		if err != nil {
			t.Fatalf("construct member: %v", err)
		}
		lib.AddMember(m)
		for i := 0; i < preHeld; i++ {
			other, err := catalog.New(fmt.Sprintf("X%03d", i), "Filler", "Some Author", "Fiction", 2000)
			if err != nil {
				t.Fatalf("construct book: %v", err)
			}
			lib.AddBook(other)
			if !lib.CheckoutBook(other.ID(), "M001") {
				t.Fatalf("pre-checkout %d refused", i)
			}
		}
		before := m.BorrowedBooks()

		if !lib.CheckoutBook("B001", "M001") {
			t.Fatal("checkout refused for available book under the limit")
		}
		if !lib.ReturnBook("B001", "M001") {
			t.Fatal("return refused for held book")
		}

		if !b.IsAvailable() {
			t.Fatal("availability not restored after round trip")
		}
		after := m.BorrowedBooks()
		if len(after) != len(before) {
			t.Fatalf("borrowed list changed: before=%v after=%v", before, after)
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("borrow order changed: before=%v after=%v", before, after)
			}
		}
	})
}
