package http

import (
	"net/http"

	"ilas-backend/internal/security"
	"ilas-backend/internal/service"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Lending *LendingHandler
	Books   *BookHandler
	Reports *ReportHandler
}

func NewHandlers(
	auth service.AuthService,
	lending service.LendingService,
	books service.BookService,
	reports service.ReportService,
	audit service.AuditService,
) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(auth),
		Lending: NewLendingHandler(lending),
		Books:   NewBookHandler(books),
		Reports: NewReportHandler(reports, audit),
	}
}

// NewRouter wires all routes. Everything except login and the public book
// list sits behind the auth middleware.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/books", h.Books.List).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", h.Books.Get).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	protected.HandleFunc("/loans/issue", h.Lending.Issue).Methods(http.MethodPost)
	protected.HandleFunc("/loans/return", h.Lending.Return).Methods(http.MethodPost)
	protected.HandleFunc("/loans", h.Lending.ListTransactions).Methods(http.MethodGet)
	protected.HandleFunc("/books/{id:[0-9]+}/status", h.Lending.MarkStatus).Methods(http.MethodPost)

	protected.HandleFunc("/books", h.Books.Create).Methods(http.MethodPost)
	protected.HandleFunc("/books/{id:[0-9]+}", h.Books.Update).Methods(http.MethodPut)
	protected.HandleFunc("/books/{id:[0-9]+}", h.Books.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/members", h.Auth.Register).Methods(http.MethodPost)

	protected.HandleFunc("/reports/summary", h.Reports.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/audit", h.Reports.ListAudit).Methods(http.MethodGet)

	return r
}
