package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workforcehq/payroll-backend-go/internal/domain/salary"
	"github.com/workforcehq/payroll-backend-go/internal/handler/http/response"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/validator"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	ListMyRecords(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// ========== GENERATION ==========

func (h *salaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary record generated", result)
}

// ========== RECORDS ==========

func (h *salaryHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.salaryService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := salary.Filter{
		Page:  1,
		Limit: 10,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		start, ok := validator.IsValidDate(startStr)
		if !ok {
			response.BadRequest(w, "Invalid start_date", nil)
			return
		}
		filter.StartDate = &start
	}
	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		end, ok := validator.IsValidDate(endStr)
		if !ok {
			response.BadRequest(w, "Invalid end_date", nil)
			return
		}
		filter.EndDate = &end
	}

	result, err := h.salaryService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListMyRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.ListMyRecords(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== STATUS ==========

func (h *salaryHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req salary.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.salaryService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== STATS ==========

func (h *salaryHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	var startDate, endDate *string
	if s := r.URL.Query().Get("start_date"); s != "" {
		startDate = &s
	}
	if e := r.URL.Query().Get("end_date"); e != "" {
		endDate = &e
	}

	result, err := h.salaryService.GetStats(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
