package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/phd13/vue-infinite-scroll/internal/domain"
	"github.com/phd13/vue-infinite-scroll/internal/service"
)

const requestIDHeader = "X-Request-Id"

type ErrorResponse struct {
	Error string `json:"error"`
}

type UsersHandler struct {
	userService    domain.UserService
	allowedOrigins map[string]struct{}
}

func NewUsersHandler(userService domain.UserService, allowedOrigins []string) *UsersHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins[trimmed] = struct{}{}
		}
	}

	return &UsersHandler{
		userService:    userService,
		allowedOrigins: origins,
	}
}

func (h *UsersHandler) RegisterRoutes(router *mux.Router) {
	router.Use(mux.CORSMethodMiddleware(router), h.corsMiddleware)

	router.HandleFunc("/users", h.handleListUsers).Methods(http.MethodGet, http.MethodOptions)

	if h.userService.HistoryEnabled() {
		router.HandleFunc("/fetches", h.handleListFetches).Methods(http.MethodGet, http.MethodOptions)
		router.HandleFunc("/fetches/{id}", h.handleGetFetch).Methods(http.MethodGet, http.MethodOptions)
	}
}

func (h *UsersHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count")
	if err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "count must be an integer"})
		return
	}

	batch, err := h.userService.ListUsers(r.Context(), count)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set(requestIDHeader, batch.RequestID.String())
	h.respondWithJSON(w, http.StatusOK, batch.Users)
}

func (h *UsersHandler) handleListFetches(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
		return
	}

	entries, err := h.userService.RecentFetches(r.Context(), limit)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, entries)
}

func (h *UsersHandler) handleGetFetch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid fetch id"})
		return
	}

	entry, err := h.userService.GetFetch(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, entry)
}

// corsMiddleware echoes allowed origins and answers preflight requests
func (h *UsersHandler) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if _, ok := h.allowedOrigins[origin]; ok {
				hdr := w.Header()
				hdr.Set("Access-Control-Allow-Origin", origin)
				hdr.Add("Vary", "Origin")
				hdr.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
				hdr.Set("Access-Control-Expose-Headers", requestIDHeader)
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *UsersHandler) respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		err := json.NewEncoder(w).Encode(data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func (h *UsersHandler) handleError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, domain.ErrInvalidCount):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrFetchLogNotFound), errors.Is(err, service.ErrHistoryDisabled):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrTransportFailure) && errors.As(err, &timeout) && timeout.Timeout():
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrTransportFailure), errors.Is(err, domain.ErrMalformedResponse):
		status = http.StatusBadGateway
	}

	h.respondWithJSON(w, status, ErrorResponse{Error: err.Error()})
}

// queryInt returns zero when the parameter is absent
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
