package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/handler/http/middleware"
	"github.com/orgdesk/orgdesk-backend-go/internal/handler/http/response"
)

type ExceptionHandler interface {
	ListLate(w http.ResponseWriter, r *http.Request)
	ListHalfDay(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SubmitReason(w http.ResponseWriter, r *http.Request)
	ReviewLate(w http.ResponseWriter, r *http.Request)
	ReviewHalfDay(w http.ResponseWriter, r *http.Request)
}

type exceptionHandlerImpl struct {
	exceptionService exception.Service
}

func NewExceptionHandler(exceptionService exception.Service) ExceptionHandler {
	return &exceptionHandlerImpl{
		exceptionService: exceptionService,
	}
}

func (h *exceptionHandlerImpl) list(w http.ResponseWriter, r *http.Request, kind exception.Kind) {
	filter := exception.Filter{Kind: kind}
	query := r.URL.Query()

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if action := query.Get("action_taken"); action != "" {
		filter.ActionTaken = &action
	}
	if justified := query.Get("justified"); justified != "" {
		if b, err := strconv.ParseBool(justified); err == nil {
			filter.Justified = &b
		}
	}
	if page := query.Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := query.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	result, err := h.exceptionService.List(r.Context(), &filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListLate implements ExceptionHandler.
func (h *exceptionHandlerImpl) ListLate(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, exception.KindLate)
}

// ListHalfDay implements ExceptionHandler.
func (h *exceptionHandlerImpl) ListHalfDay(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, exception.KindHalfDay)
}

// Get implements ExceptionHandler.
func (h *exceptionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Log id is required", nil)
		return
	}

	result, err := h.exceptionService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitReason implements ExceptionHandler.
func (h *exceptionHandlerImpl) SubmitReason(w http.ResponseWriter, r *http.Request) {
	var req exception.SubmitReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.LogID = chi.URLParam(r, "id")
	req.EmployeeID = middleware.EmployeeID(r)

	result, err := h.exceptionService.SubmitReason(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reason submitted", result)
}

func (h *exceptionHandlerImpl) review(w http.ResponseWriter, r *http.Request, kind exception.Kind) {
	var req exception.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.LogID = chi.URLParam(r, "id")
	req.Kind = kind
	req.ReviewerID = middleware.EmployeeID(r)

	result, err := h.exceptionService.Review(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review applied", result)
}

// ReviewLate implements ExceptionHandler.
func (h *exceptionHandlerImpl) ReviewLate(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, exception.KindLate)
}

// ReviewHalfDay implements ExceptionHandler.
func (h *exceptionHandlerImpl) ReviewHalfDay(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, exception.KindHalfDay)
}
