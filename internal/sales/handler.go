package sales

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gudangkain/gudangkain/internal/platform/httpx"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// InvoiceRenderer turns one resolved invoice into PDF bytes.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, invoice Invoice, lines []InvoiceLine) ([]byte, error)
}

// Handler wires HTTP endpoints for sales.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	renderer InvoiceRenderer
	validate *validator.Validate
}

// NewHandler constructs sales handler. renderer may be nil when no PDF
// service is configured; the export route then responds 503.
func NewHandler(logger *slog.Logger, service *Service, renderer InvoiceRenderer) *Handler {
	return &Handler{logger: logger, service: service, renderer: renderer, validate: validator.New()}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sales", h.handleList)
	r.Post("/sales", h.handleSubmit)
	r.Get("/sales/next-number", h.handleNextNumber)
	r.Get("/sales/{number}", h.handleGet)
	r.Get("/sales/{number}/pdf", h.handlePDF)
}

type saleRequest struct {
	CustomerName string     `json:"customer_name" validate:"required"`
	Items        []CartLine `json:"items" validate:"required,min=1"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	number, err := h.service.SubmitSale(r.Context(), req.CustomerName, req.Items)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"invoice_number": number})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	invoice, lines, err := h.service.GetInvoice(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": invoice, "items": lines})
}

func (h *Handler) handleNextNumber(w http.ResponseWriter, r *http.Request) {
	today := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse(sheetdb.DateLayout, v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
			return
		}
		today = parsed
	}
	number, err := h.service.NextInvoiceNumber(r.Context(), today)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoice_number": number})
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Renderer Unavailable", "PDF rendering is not configured")
		return
	}
	number := chi.URLParam(r, "number")
	invoice, lines, err := h.service.GetInvoice(r.Context(), number)
	if err != nil {
		h.respondError(w, err)
		return
	}
	pdf, err := h.renderer.RenderInvoice(r.Context(), invoice, lines)
	if err != nil {
		h.logger.Error("render invoice", slog.String("invoice", number), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "invoice could not be rendered")
		return
	}
	httpx.PDF(w, number+".pdf", pdf)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var insufficient *InsufficientStockError
	var partial *PartialWriteError
	switch {
	case errors.As(err, &insufficient):
		httpx.JSON(w, http.StatusConflict, map[string]any{
			"title":      "Insufficient Stock",
			"status":     http.StatusConflict,
			"detail":     insufficient.Error(),
			"kode_bahan": insufficient.KodeBahan,
			"warna":      insufficient.Warna,
			"available":  insufficient.Available,
		})
	case errors.As(err, &partial):
		h.logger.Error("partial sale write, manual reconciliation may be needed",
			slog.String("invoice", partial.InvoiceNumber), slog.Any("error", err))
		httpx.JSON(w, http.StatusInternalServerError, map[string]any{
			"title":          "Partial Write",
			"status":         http.StatusInternalServerError,
			"detail":         "sale was only partially recorded",
			"invoice_number": partial.InvoiceNumber,
		})
	case errors.Is(err, ErrMissingCustomer), errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidCartLine):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrInvoiceNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, sheetdb.ErrBackendUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", "table backend unreachable")
	default:
		h.logger.Error("sales request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
