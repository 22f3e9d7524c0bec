package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
	"ilas-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookHandler struct {
	books service.BookService
}

func NewBookHandler(books service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	ISBN          string `json:"isbn"`
	Category      string `json:"category"`
	ShelfLocation string `json:"shelf_location"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Title == "" || req.Author == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title and author are required"})
		return
	}

	book := &domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		ISBN:          req.ISBN,
		Category:      req.Category,
		ShelfLocation: req.ShelfLocation,
	}
	if err := h.books.AddBook(r.Context(), book, actor.MemberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}
	book, err := h.books.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	book := &domain.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		ISBN:          req.ISBN,
		Category:      req.Category,
		ShelfLocation: req.ShelfLocation,
	}
	if err := h.books.UpdateBook(r.Context(), book, actor.MemberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}
	if err := h.books.DeleteBook(r.Context(), id, actor.MemberID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := repository.BookQuery{
		Search:   r.URL.Query().Get("q"),
		Status:   r.URL.Query().Get("status"),
		Page:     parseInt32(r.URL.Query().Get("page"), 1),
		PageSize: parseInt32(r.URL.Query().Get("page_size"), 20),
	}
	books, total, err := h.books.ListBooks(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"books": books,
		"total": total,
	})
}
