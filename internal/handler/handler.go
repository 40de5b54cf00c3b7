// Package handler exposes the service over HTTP and maps domain errors to
// status codes: validation failures to 400, unknown customers to 404,
// duplicate registrations to 409.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/oid"
	"github.com/dummy-bank/portfolio-api/internal/portfolio"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *portfolio.Service
	logger  logger.Logger
}

func New(service *portfolio.Service, logger logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.handleHealth)
	r.Get("/user-portfolio/{customerOID}", h.handlePortfolio)
	r.Get("/customers", h.handleListCustomers)
	r.Get("/customer/{customerOID}/exists", h.handleExists)
	r.Post("/register-customer", h.handleRegister)
	r.Delete("/customer/{customerOID}", h.handleDelete)
	return r
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, `{"detail":"encoding error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, oid.EmptyError),
		errors.Is(err, oid.InvalidFormatError),
		errors.Is(err, portfolio.InvalidNameError):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, portfolio.NotFoundError):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, portfolio.AlreadyExistsError):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Errorf("%s: request failed", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "portfolio-api",
	})
}

func (h *Handler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	customerOID := chi.URLParam(r, "customerOID")

	p, err := h.service.Aggregate(r.Context(), customerOID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type customerResponse struct {
	CustomerOID string `json:"customer_oid"`
	Name        string `json:"name"`
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	response := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		response = append(response, customerResponse{CustomerOID: c.CustomerOID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, response)
}

type existsResponse struct {
	CustomerOID string  `json:"customer_oid"`
	Exists      bool    `json:"exists"`
	Name        *string `json:"name"`
}

func (h *Handler) handleExists(w http.ResponseWriter, r *http.Request) {
	customerOID := chi.URLParam(r, "customerOID")

	customer, exists, err := h.service.Exists(r.Context(), customerOID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	response := existsResponse{CustomerOID: customerOID, Exists: exists}
	if exists {
		response.Name = &customer.Name
	}
	writeJSON(w, http.StatusOK, response)
}

type registerRequest struct {
	Name        string `json:"name"`
	CustomerOID string `json:"customer_oid"`
}

type registerResponse struct {
	CustomerOID string `json:"customer_oid"`
	Name        string `json:"name"`
	Message     string `json:"message"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "can't read request body")
		return
	}

	var req registerRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.service.Register(r.Context(), req.Name, req.CustomerOID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		CustomerOID: customer.CustomerOID,
		Name:        customer.Name,
		Message:     "Customer registered successfully",
	})
}

type deleteResponse struct {
	CustomerOID string `json:"customer_oid"`
	Message     string `json:"message"`
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	customerOID := chi.URLParam(r, "customerOID")

	if err := h.service.Delete(r.Context(), customerOID); err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		CustomerOID: customerOID,
		Message:     "Customer and all associated data deleted successfully",
	})
}
