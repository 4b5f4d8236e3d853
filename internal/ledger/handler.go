package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gudangkain/gudangkain/internal/platform/httpx"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Handler wires HTTP endpoints for the movement ledgers and derived stock.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs ledger handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers stock routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stock/balance", h.handleBalance)
	r.Get("/stock/movements", h.handleMovements)
	r.Get("/stock/yards", h.handleYards)
	r.Post("/stock/{kind}", h.handleRecord)
	r.Put("/stock/{kind}/{rowID}", h.handleUpdate)
	r.Delete("/stock/{kind}/{rowID}", h.handleDelete)
}

type movementRequest struct {
	TanggalWaktu string  `json:"tanggal_waktu"`
	KodeBahan    string  `json:"kode_bahan" validate:"required"`
	Warna        string  `json:"warna" validate:"required"`
	Stok         int64   `json:"stok" validate:"gt=0"`
	Yard         float64 `json:"yard" validate:"gte=0"`
	Keterangan   string  `json:"keterangan"`
}

func (req movementRequest) toInput() (MovementInput, error) {
	input := MovementInput{
		KodeBahan:  req.KodeBahan,
		Warna:      req.Warna,
		Qty:        req.Stok,
		Yard:       req.Yard,
		Keterangan: req.Keterangan,
	}
	if req.TanggalWaktu != "" {
		ts, err := sheetdb.ParseTime(req.TanggalWaktu)
		if err != nil {
			return MovementInput{}, err
		}
		input.Timestamp = ts
	}
	return input, nil
}

func kindParam(r *http.Request) (Kind, bool) {
	switch chi.URLParam(r, "kind") {
	case "incoming":
		return KindIncoming, true
	case "outgoing":
		return KindOutgoing, true
	default:
		return "", false
	}
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kode, warna := q.Get("kode_bahan"), q.Get("warna")
	if kode == "" || warna == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "kode_bahan and warna are required")
		return
	}
	balance, err := h.service.Balance(r.Context(), kode, warna)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"kode_bahan": kode, "warna": warna, "stok": balance})
}

func (h *Handler) handleMovements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kode, warna := q.Get("kode_bahan"), q.Get("warna")
	if kode == "" || warna == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "kode_bahan and warna are required")
		return
	}
	var from, to time.Time
	var err error
	if v := q.Get("from"); v != "" {
		if from, err = time.Parse(sheetdb.DateLayout, v); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "from must be YYYY-MM-DD")
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = time.Parse(sheetdb.DateLayout, v); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must be YYYY-MM-DD")
			return
		}
	}
	movements, err := h.service.Movements(r.Context(), kode, warna, from, to)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movements)
}

func (h *Handler) handleYards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kode, warna := q.Get("kode_bahan"), q.Get("warna")
	if kode == "" || warna == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "kode_bahan and warna are required")
		return
	}
	yards, err := h.service.DistinctYards(r.Context(), kode, warna)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, yards)
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "ledger kind must be incoming or outgoing")
		return
	}
	var req movementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "tanggal_waktu is not a valid timestamp")
		return
	}
	var movement Movement
	if kind == KindIncoming {
		movement, err = h.service.RecordIncoming(r.Context(), input)
	} else {
		movement, err = h.service.RecordOutgoing(r.Context(), input)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, movement)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "ledger kind must be incoming or outgoing")
		return
	}
	var req movementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "tanggal_waktu is not a valid timestamp")
		return
	}
	movement, err := h.service.UpdateMovement(r.Context(), kind, chi.URLParam(r, "rowID"), input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movement)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "ledger kind must be incoming or outgoing")
		return
	}
	if err := h.service.DeleteMovement(r.Context(), kind, chi.URLParam(r, "rowID")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidMovement):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrMovementNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, sheetdb.ErrRowNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, sheetdb.ErrBackendUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", "table backend unreachable")
	default:
		h.logger.Error("ledger request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
