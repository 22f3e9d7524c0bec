package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
	"ilas-backend/internal/service"

	"github.com/gorilla/mux"
)

type LendingHandler struct {
	lending service.LendingService
}

func NewLendingHandler(lending service.LendingService) *LendingHandler {
	return &LendingHandler{lending: lending}
}

type issueRequest struct {
	BookID   int64  `json:"book_id"`
	MemberID int64  `json:"member_id"`
	Remarks  string `json:"remarks"`
}

func (h *LendingHandler) Issue(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.BookID == 0 || req.MemberID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "book_id and member_id are required"})
		return
	}

	txn, err := h.lending.Issue(r.Context(), req.BookID, req.MemberID, actor.MemberID, req.Remarks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type returnRequest struct {
	BookID   int64  `json:"book_id"`
	MemberID *int64 `json:"member_id,omitempty"`
	Remarks  string `json:"remarks"`
}

func (h *LendingHandler) Return(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.BookID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "book_id is required"})
		return
	}

	txn, err := h.lending.Return(r.Context(), req.BookID, req.MemberID, actor.MemberID, req.Remarks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

type markStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

func (h *LendingHandler) MarkStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	bookID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book id"})
		return
	}

	var req markStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var book *domain.Book
	status := strings.ToUpper(req.Status)
	if status == string(domain.BookStatusAvailable) {
		book, err = h.lending.Reactivate(r.Context(), bookID, actor.MemberID, req.Remarks)
	} else {
		book, err = h.lending.MarkStatus(r.Context(), bookID, domain.TxnType(status), actor.MemberID, req.Remarks)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"book_code": book.BookCode,
		"status":    book.Status,
	})
}

func (h *LendingHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := repository.TransactionQuery{
		Page:     parseInt32(r.URL.Query().Get("page"), 1),
		PageSize: parseInt32(r.URL.Query().Get("page_size"), 20),
	}
	if v := r.URL.Query().Get("book_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid book_id"})
			return
		}
		q.BookID = id
	}
	if v := r.URL.Query().Get("member_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member_id"})
			return
		}
		q.MemberID = id
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		q.Active = &active
	}

	txns, total, err := h.lending.ListTransactions(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"total":        total,
	})
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
