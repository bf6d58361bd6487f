package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/marewang/final-bnn/internal/services"
	"github.com/marewang/final-bnn/internal/store"
	"github.com/marewang/final-bnn/types"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	minNamaLength   = 3
)

var nipPattern = regexp.MustCompile(`^\d{18}$`)

// ASNHandler provides HTTP handlers for personnel records.
type ASNHandler struct {
	asnService *services.ASNService
}

// NewASNHandler constructs a handler with the provided service.
func NewASNHandler(asnService *services.ASNService) *ASNHandler {
	return &ASNHandler{asnService: asnService}
}

// ASNRouter registers personnel-record routes on the given router.
// The caller mounts it behind the session middleware.
func ASNRouter(r chi.Router, asnService *services.ASNService) {
	handler := NewASNHandler(asnService)

	r.Get("/", handler.ListASN)
	r.Post("/", handler.CreateASN)
	r.Route("/{asnID}", func(r chi.Router) {
		r.Get("/", handler.GetASN)
		r.Put("/", handler.UpdateASN)
		r.Delete("/", handler.DeleteASN)
	})
}

func (h *ASNHandler) ListASN(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	page, pageSize, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.asnService.List(r.Context(), q, offset, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	writeJSON(w, http.StatusOK, ASNListResponse{
		Data:     items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *ASNHandler) GetASN(w http.ResponseWriter, r *http.Request) {
	id, err := parseASNID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.asnService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch record")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *ASNHandler) CreateASN(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeASNBody(w, r)
	if !ok {
		return
	}

	created, err := h.asnService.Create(r.Context(), record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create record")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ASNHandler) UpdateASN(w http.ResponseWriter, r *http.Request) {
	id, err := parseASNID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, ok := decodeASNBody(w, r)
	if !ok {
		return
	}
	record.ID = id

	updated, err := h.asnService.Update(r.Context(), record)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update record")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ASNHandler) DeleteASN(w http.ResponseWriter, r *http.Request) {
	id, err := parseASNID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.asnService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func decodeASNBody(w http.ResponseWriter, r *http.Request) (types.ASN, bool) {
	var record types.ASN
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return types.ASN{}, false
	}

	record.Nama = strings.TrimSpace(record.Nama)
	record.NIP = strings.TrimSpace(record.NIP)
	if len(record.Nama) < minNamaLength {
		writeError(w, http.StatusBadRequest, "nama must be at least 3 characters")
		return types.ASN{}, false
	}
	if !nipPattern.MatchString(record.NIP) {
		writeError(w, http.StatusBadRequest, "nip must be exactly 18 digits")
		return types.ASN{}, false
	}
	return record, true
}

func parseASNID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "asnID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid record id")
	}
	return id, nil
}

func parsePagination(r *http.Request) (page, pageSize, offset int, err error) {
	page = defaultPage
	pageSize = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, 0, fmt.Errorf("invalid page")
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			return 0, 0, 0, fmt.Errorf("invalid pageSize")
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize, (page - 1) * pageSize, nil
}

// ASNListResponse is the paginated listing body.
type ASNListResponse struct {
	Data     []types.ASN `json:"data"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}
