package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/stats"
	"github.com/orgdesk/orgdesk-backend-go/internal/handler/http/response"
)

type StatsHandler interface {
	Period(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) StatsHandler {
	return &statsHandlerImpl{
		statsService: statsService,
	}
}

// Period implements StatsHandler.
func (h *statsHandlerImpl) Period(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := stats.PeriodRequest{
		Period: stats.Period(query.Get("period")),
		Date:   query.Get("date"),
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	if breakdown := query.Get("breakdown"); breakdown != "" {
		if b, err := strconv.ParseBool(breakdown); err == nil {
			req.Breakdown = b
		}
	}

	result, err := h.statsService.PeriodStats(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements StatsHandler.
func (h *statsHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := stats.MonthlyRequest{
		Month: query.Get("month"),
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}

	result, err := h.statsService.MonthlyStats(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeSummary implements StatsHandler.
func (h *statsHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	req := stats.EmployeeSummaryRequest{
		EmployeeID: chi.URLParam(r, "id"),
	}
	if months := r.URL.Query().Get("months"); months != "" {
		if m, err := strconv.Atoi(months); err == nil {
			req.Months = m
		}
	}

	result, err := h.statsService.EmployeeSummary(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
