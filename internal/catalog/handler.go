package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gudangkain/gudangkain/internal/platform/httpx"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Handler wires HTTP endpoints for the master item catalog.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs catalog handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/items", h.handleList)
	r.Post("/items", h.handleAdd)
	r.Put("/items/{kode}/{warna}", h.handleRename)
	r.Delete("/items/{kode}/{warna}", h.handleRemove)
}

type itemRequest struct {
	KodeBahan    string  `json:"kode_bahan" validate:"required"`
	NamaSupplier string  `json:"nama_supplier"`
	NamaBahan    string  `json:"nama_bahan"`
	Warna        string  `json:"warna" validate:"required"`
	Rak          string  `json:"rak"`
	Harga        float64 `json:"harga" validate:"gte=0"`
}

func (req itemRequest) toVariant() MaterialVariant {
	return MaterialVariant{
		KodeBahan:    req.KodeBahan,
		NamaSupplier: req.NamaSupplier,
		NamaBahan:    req.NamaBahan,
		Warna:        req.Warna,
		Rak:          req.Rak,
		Harga:        req.Harga,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Add(r.Context(), req.toVariant()); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, req.toVariant())
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	oldKey := ItemKey{KodeBahan: chi.URLParam(r, "kode"), Warna: chi.URLParam(r, "warna")}
	var req itemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Rename(r.Context(), oldKey, req.toVariant()); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, req.toVariant())
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	key := ItemKey{KodeBahan: chi.URLParam(r, "kode"), Warna: chi.URLParam(r, "warna")}
	if err := h.service.Remove(r.Context(), key); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDuplicateItem):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrInvalidItem):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrItemNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, sheetdb.ErrBackendUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", "table backend unreachable")
	default:
		h.logger.Error("catalog request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
