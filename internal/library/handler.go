// internal/library/handler.go
package library

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"libracore/internal/catalog"
	"libracore/internal/journal"
	"libracore/internal/membership"
)

// Handler exposes a Library over HTTP. Soft failures from the core keep
// their boolean contract; the handler derives 404 vs 409 from lookups.
type Handler struct {
	lib     *Library
	journal *journal.Journal
	log     *zap.SugaredLogger

	registerLimiter *rate.Limiter
	checkouts       metric.Int64Counter
	returns         metric.Int64Counter
}

// NewHandler creates a handler around the given library. Member registration
// is rate limited to 5 requests per minute.
func NewHandler(lib *Library, jr *journal.Journal, log *zap.SugaredLogger) *Handler {
	meter := otel.Meter("libracore/library")
	checkouts, _ := meter.Int64Counter("library.checkouts",
		metric.WithDescription("Number of successful book checkouts"))
	returns, _ := meter.Int64Counter("library.returns",
		metric.WithDescription("Number of successful book returns"))

	return &Handler{
		lib:             lib,
		journal:         jr,
		log:             log,
		registerLimiter: rate.NewLimiter(rate.Every(time.Minute/5), 5),
		checkouts:       checkouts,
		returns:         returns,
	}
}

// Routes wires the handler onto a fresh chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealth)
	r.Get("/stats", h.handleStats)

	r.Route("/books", func(r chi.Router) {
		r.Post("/", h.handleAddBook)
		r.Get("/", h.handleListBooks)
		r.Get("/available", h.handleAvailableBooks)
		r.Get("/search/title", h.handleSearchByTitle)
		r.Get("/search/author", h.handleSearchByAuthor)
		r.Get("/{bookID}", h.handleGetBook)
	})

	r.Route("/members", func(r chi.Router) {
		r.Post("/", h.handleRegisterMember)
		r.Get("/", h.handleListMembers)
		r.Get("/{memberID}", h.handleGetMember)
	})

	r.Post("/checkout", h.handleCheckout)
	r.Post("/returns", h.handleReturn)
	r.Get("/journal", h.handleJournal)

	return r
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"name":          h.lib.Name(),
		"address":       h.lib.Address(),
		"books_total":   h.lib.BookCount(),
		"members_total": h.lib.MemberCount(),
	})
}

func (h *Handler) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		Author          string `json:"author"`
		Genre           string `json:"genre"`
		PublicationYear int    `json:"publication_year"`
		Kind            string `json:"kind"`
		FictionType     string `json:"fiction_type"`
		Subject         string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		b   *catalog.Book
		err error
	)
	switch catalog.Kind(req.Kind) {
	case catalog.KindFiction:
		b, err = catalog.NewFiction(req.ID, req.Title, req.Author, req.Genre, req.PublicationYear, req.FictionType)
	case catalog.KindNonFiction:
		b, err = catalog.NewNonFiction(req.ID, req.Title, req.Author, req.Genre, req.PublicationYear, req.Subject)
	default:
		b, err = catalog.New(req.ID, req.Title, req.Author, req.Genre, req.PublicationYear)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.lib.AddBook(b) {
		http.Error(w, "book with this ID already exists", http.StatusConflict)
		return
	}

	h.journal.Record(r.Context(), journal.KindBookAdded, b.ID(), "")
	h.log.Infow("book added", "book_id", b.ID(), "kind", b.Kind())
	view, _ := h.lib.ViewBook(b.ID())
	respondJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.lib.ViewAllBooks())
}

func (h *Handler) handleAvailableBooks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.lib.ViewAvailableBooks())
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	view, ok := h.lib.ViewBook(chi.URLParam(r, "bookID"))
	if !ok {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) handleSearchByTitle(w http.ResponseWriter, r *http.Request) {
	// An absent query is the hard validation failure; a present-but-empty
	// query legitimately matches every title.
	if !r.URL.Query().Has("q") {
		http.Error(w, "missing search query", http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, h.lib.ViewSearchByTitle(r.URL.Query().Get("q")))
}

func (h *Handler) handleSearchByAuthor(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("q") {
		http.Error(w, "missing search query", http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, h.lib.ViewSearchByAuthor(r.URL.Query().Get("q")))
}

func (h *Handler) handleRegisterMember(w http.ResponseWriter, r *http.Request) {
	if !h.registerLimiter.Allow() {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var req struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := membership.New(req.ID, req.Name, req.Email, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.lib.AddMember(m) {
		http.Error(w, "member with this ID already exists", http.StatusConflict)
		return
	}

	h.journal.Record(r.Context(), journal.KindMemberRegistered, "", m.ID())
	h.log.Infow("member registered", "member_id", m.ID())
	view, _ := h.lib.ViewMember(m.ID())
	respondJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.lib.ViewAllMembers())
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	view, ok := h.lib.ViewMember(chi.URLParam(r, "memberID"))
	if !ok {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type circulationRequest struct {
	BookID   string `json:"book_id"`
	MemberID string `json:"member_id"`
}

// lookupParties reports whether both parties exist and writes the 404 when
// one is missing.
func (h *Handler) lookupParties(w http.ResponseWriter, req circulationRequest) bool {
	if _, ok := h.lib.GetBook(req.BookID); !ok {
		http.Error(w, "book not found", http.StatusNotFound)
		return false
	}
	if _, ok := h.lib.GetMember(req.MemberID); !ok {
		http.Error(w, "member not found", http.StatusNotFound)
		return false
	}
	return true
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req circulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.lookupParties(w, req) {
		return
	}

	if !h.lib.CheckoutBook(req.BookID, req.MemberID) {
		http.Error(w, "checkout refused", http.StatusConflict)
		return
	}

	h.checkouts.Add(r.Context(), 1)
	h.journal.Record(r.Context(), journal.KindCheckout, req.BookID, req.MemberID)
	h.log.Infow("book checked out", "book_id", req.BookID, "member_id", req.MemberID)
	respondJSON(w, http.StatusOK, map[string]string{"book_id": req.BookID, "member_id": req.MemberID, "status": "checked_out"})
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req circulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.lookupParties(w, req) {
		return
	}

	if !h.lib.ReturnBook(req.BookID, req.MemberID) {
		http.Error(w, "return refused", http.StatusConflict)
		return
	}

	h.returns.Add(r.Context(), 1)
	h.journal.Record(r.Context(), journal.KindReturn, req.BookID, req.MemberID)
	h.log.Infow("book returned", "book_id", req.BookID, "member_id", req.MemberID)
	respondJSON(w, http.StatusOK, map[string]string{"book_id": req.BookID, "member_id": req.MemberID, "status": "returned"})
}

func (h *Handler) handleJournal(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.journal.Entries(r.Context()))
}
