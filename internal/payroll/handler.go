package payroll

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gudangkain/gudangkain/internal/platform/httpx"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// PayslipRenderer turns the records of one pay period into PDF bytes.
type PayslipRenderer interface {
	RenderPayslips(ctx context.Context, gajiBulan string, records []PayrollRecord, roster []Employee) ([]byte, error)
}

// Handler wires HTTP endpoints for the roster and payroll runs.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	renderer PayslipRenderer
	validate *validator.Validate
}

// NewHandler constructs payroll handler. renderer may be nil when no PDF
// service is configured; the export route then responds 503.
func NewHandler(logger *slog.Logger, service *Service, renderer PayslipRenderer) *Handler {
	return &Handler{logger: logger, service: service, renderer: renderer, validate: validator.New()}
}

// MountRoutes registers payroll routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/employees", h.handleListEmployees)
	r.Post("/employees", h.handleAddEmployee)
	r.Delete("/employees/{rowID}", h.handleRemoveEmployee)

	r.Get("/payroll", h.handleRecords)
	r.Post("/payroll/run", h.handleRun)
	r.Get("/payroll/payslips.pdf", h.handlePayslipsPDF)
}

type employeeRequest struct {
	NamaKaryawan string  `json:"nama_karyawan" validate:"required"`
	Bagian       string  `json:"bagian"`
	GajiPokok    float64 `json:"gaji_pokok" validate:"gte=0"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employees)
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	employee, err := h.service.AddEmployee(r.Context(), Employee{
		NamaKaryawan: req.NamaKaryawan,
		Bagian:       req.Bagian,
		GajiPokok:    req.GajiPokok,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveEmployee(r.Context(), chi.URLParam(r, "rowID")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type runRequest struct {
	EmployeeID string       `json:"employee_id" validate:"required"`
	GajiBulan  string       `json:"gaji_bulan" validate:"required"`
	Input      PayslipInput `json:"input"`
	Keterangan string       `json:"keterangan"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	record, err := h.service.Run(r.Context(), req.EmployeeID, req.GajiBulan, req.Input, req.Keterangan)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, record)
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	gajiBulan := r.URL.Query().Get("gaji_bulan")
	if gajiBulan == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "gaji_bulan is required")
		return
	}
	records, err := h.service.RecordsForPeriod(r.Context(), gajiBulan)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) handlePayslipsPDF(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Renderer Unavailable", "PDF rendering is not configured")
		return
	}
	gajiBulan := r.URL.Query().Get("gaji_bulan")
	if gajiBulan == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "gaji_bulan is required")
		return
	}
	records, err := h.service.RecordsForPeriod(r.Context(), gajiBulan)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if len(records) == 0 {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no payroll records for "+gajiBulan)
		return
	}
	roster, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	pdf, err := h.renderer.RenderPayslips(r.Context(), gajiBulan, records, roster)
	if err != nil {
		h.logger.Error("render payslips", slog.String("gaji_bulan", gajiBulan), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "payslips could not be rendered")
		return
	}
	httpx.PDF(w, "slip-gaji-"+gajiBulan+".pdf", pdf)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidPayrollInput), errors.Is(err, ErrInvalidEmployee), errors.Is(err, ErrMissingPeriod):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrEmployeeNotFound), errors.Is(err, sheetdb.ErrRowNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, sheetdb.ErrBackendUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", "table backend unreachable")
	default:
		h.logger.Error("payroll request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
