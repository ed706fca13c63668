// cmd/library/main.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"libracore/internal/catalog"
	"libracore/internal/library"
	"libracore/internal/membership"
)

func main() {
	counters := library.NewCounters()
	lib := library.New("City Public Library", "123 Main St, Anytown", counters)
	seed(lib)

	in := bufio.NewScanner(os.Stdin)
	for {
		printBanner(lib)

		choice, err := strconv.Atoi(prompt(in, "\nEnter your choice (0-7): "))
		if err != nil {
			fmt.Println("Invalid choice. Please enter a number between 0 and 7.")
			continue
		}

		switch choice {
		case 1:
			addBook(in, lib)
		case 2:
			addMember(in, lib)
		case 3:
			checkoutBook(in, lib)
		case 4:
			returnBook(in, lib)
		case 5:
			displayBooks(lib)
		case 6:
			displayMembers(lib)
		case 7:
			searchBooks(in, lib)
		case 0:
			fmt.Println("Thank you for using the Library Management System.")
			return
		default:
			fmt.Println("Invalid choice. Please enter a number between 0 and 7.")
		}
	}
}

func seed(lib *library.Library) {
	books := []*catalog.Book{
		mustBook(catalog.NewFiction("B001", "To Kill a Mockingbird", "Harper Lee", "Fiction", 1960, "Novel")),
		mustBook(catalog.NewFiction("B002", "1984", "George Orwell", "Fiction", 1949, "Novel")),
		mustBook(catalog.NewNonFiction("B003", "A Brief History of Time", "Stephen Hawking", "Non-Fiction", 1988, "Physics")),
		mustBook(catalog.NewNonFiction("B004", "Sapiens", "Yuval Noah Harari", "Non-Fiction", 2011, "History")),
	}
	for _, b := range books {
		lib.AddBook(b)
	}

	members := []*membership.Member{
		mustMember(membership.New("M001", "John Smith", "john@example.com", nil)),
		mustMember(membership.New("M002", "Jane Doe", "jane@example.com", nil)),
	}
	for _, m := range members {
		lib.AddMember(m)
	}
}

func mustBook(b *catalog.Book, err error) *catalog.Book {
	if err != nil {
		panic(err)
	}
	return b
}

func mustMember(m *membership.Member, err error) *membership.Member {
	if err != nil {
		panic(err)
	}
	return m
}

func printBanner(lib *library.Library) {
	fmt.Println("\n===== LIBRARY MANAGEMENT SYSTEM =====")
	fmt.Printf("Library Name: %s\n", lib.Name())
	fmt.Printf("Address: %s\n", lib.Address())
	fmt.Printf("Total Books: %d\n", lib.BookCount())
	fmt.Printf("Total Members: %d\n", lib.MemberCount())
	fmt.Println("\nMenu:")
	fmt.Println("1. Add New Book")
	fmt.Println("2. Add New Member")
	fmt.Println("3. Checkout Book")
	fmt.Println("4. Return Book")
	fmt.Println("5. Display All Books")
	fmt.Println("6. Display All Members")
	fmt.Println("7. Search for Books")
	fmt.Println("0. Exit")
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		// EOF on stdin behaves like choosing Exit.
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func addBook(in *bufio.Scanner, lib *library.Library) {
	id := prompt(in, "Enter book ID: ")
	title := prompt(in, "Enter title: ")
	author := prompt(in, "Enter author: ")
	genre := prompt(in, "Enter genre: ")

	year, err := strconv.Atoi(prompt(in, "Enter publication year: "))
	if err != nil {
		fmt.Println("Invalid year. Using current year.")
		year = time.Now().Year()
	}

	var b *catalog.Book
	switch strings.ToUpper(prompt(in, "Enter book type (F for Fiction, N for Non-Fiction): ")) {
	case "F":
		b, err = catalog.NewFiction(id, title, author, genre, year, prompt(in, "Enter fiction type: "))
	case "N":
		b, err = catalog.NewNonFiction(id, title, author, genre, year, prompt(in, "Enter subject: "))
	default:
		fmt.Println("Invalid book type. Adding as base Book type.")
		b, err = catalog.New(id, title, author, genre, year)
	}
	if err != nil {
		fmt.Printf("Invalid book data: %v\n", err)
		return
	}

	if lib.AddBook(b) {
		fmt.Printf("Book %s added successfully.\n", id)
	} else {
		fmt.Printf("Book with ID %s already exists.\n", id)
	}
}

func addMember(in *bufio.Scanner, lib *library.Library) {
	id := prompt(in, "Enter member ID: ")
	name := prompt(in, "Enter name: ")
	email := prompt(in, "Enter email: ")

	m, err := membership.New(id, name, email, nil)
	if err != nil {
		fmt.Printf("Invalid member data: %v\n", err)
		return
	}

	if lib.AddMember(m) {
		fmt.Printf("Member %s added successfully.\n", id)
	} else {
		fmt.Printf("Member with ID %s already exists.\n", id)
	}
}

// missingParty names the absent side of a checkout/return request. ok is
// false when either lookup fails; the book is reported first.
func missingParty(lib *library.Library, bookID, memberID string) (string, bool) {
	if _, found := lib.GetBook(bookID); !found {
		return fmt.Sprintf("Book with ID %s not found", bookID), false
	}
	if _, found := lib.GetMember(memberID); !found {
		return fmt.Sprintf("Member with ID %s not found", memberID), false
	}
	return "", true
}

func checkoutBook(in *bufio.Scanner, lib *library.Library) {
	bookID := prompt(in, "Enter book ID: ")
	memberID := prompt(in, "Enter member ID: ")

	if msg, ok := missingParty(lib, bookID, memberID); !ok {
		fmt.Println(msg)
	}

	if lib.CheckoutBook(bookID, memberID) {
		fmt.Printf("Book %s checked out successfully to member %s.\n", bookID, memberID)
	} else {
		fmt.Println("Checkout failed.")
	}
}

func returnBook(in *bufio.Scanner, lib *library.Library) {
	bookID := prompt(in, "Enter book ID: ")
	memberID := prompt(in, "Enter member ID: ")

	if msg, ok := missingParty(lib, bookID, memberID); !ok {
		fmt.Println(msg)
	}

	if lib.ReturnBook(bookID, memberID) {
		fmt.Printf("Book %s returned successfully by member %s.\n", bookID, memberID)
	} else {
		fmt.Println("Return failed.")
	}
}

func displayBooks(lib *library.Library) {
	books := lib.AllBooks()
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}
	fmt.Println("\nCurrent Book Collection:")
	for _, b := range books {
		fmt.Println(b.DisplayInfo())
	}
}

func displayMembers(lib *library.Library) {
	members := lib.AllMembers()
	if len(members) == 0 {
		fmt.Println("No members found.")
		return
	}
	fmt.Println("\nLibrary Members:")
	for _, m := range members {
		fmt.Println(m.DisplayInfo())
	}
}

func searchBooks(in *bufio.Scanner, lib *library.Library) {
	fmt.Println("\nSearch Options:")
	fmt.Println("1. Search by Title")
	fmt.Println("2. Search by Author")
	fmt.Println("3. Show Available Books")

	var books map[string]*catalog.Book
	switch prompt(in, "Enter search option (1-3): ") {
	case "1":
		books = lib.SearchByTitle(prompt(in, "Enter title keyword: "))
	case "2":
		books = lib.SearchByAuthor(prompt(in, "Enter author keyword: "))
	case "3":
		books = lib.AvailableBooks()
	default:
		fmt.Println("Invalid search option.")
		return
	}

	if len(books) == 0 {
		fmt.Println("No matching books found.")
		return
	}
	fmt.Println("\nSearch Results:")
	for _, b := range books {
		fmt.Println(b.DisplayInfo())
	}
}
