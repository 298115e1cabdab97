package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/config"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	research input.ResearchService
	junior   input.JuniorService
	logger   output.LoggerPort
}

func NewHandlers(research input.ResearchService, junior input.JuniorService, logger output.LoggerPort) *Handlers {
	if logger == nil {
		logger = output.NopLogger{}
	}
	return &Handlers{
		research: research,
		junior:   junior,
		logger:   logger,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type rootResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Version: config.Version})
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, rootResponse{Service: config.ServiceName, Status: "Active"})
}

func (h *Handlers) Junior(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.junior.Ask(r.Context(), req))
}

func (h *Handlers) Research(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.research.Research(r.Context(), req))
}

func (h *Handlers) decodeQuery(w http.ResponseWriter, r *http.Request) (entity.QueryRequest, bool) {
	var req entity.QueryRequest

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		detail := "invalid JSON body"
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			detail = "request body is required"
		case errors.As(err, &typeErr):
			detail = fmt.Sprintf("field %q must be a %s", typeErr.Field, typeErr.Type)
		}
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: detail})
		return req, false
	}
	return req, true
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}
