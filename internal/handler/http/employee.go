package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/employee"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
	employeeService "github.com/saudkhanbpk/ems-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	MyProfile(w http.ResponseWriter, r *http.Request)
	UpsertProfile(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddIncrement(w http.ResponseWriter, r *http.Request)
	ListIncrements(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employeeService.EmployeeService
}

func NewEmployeeHandler(service employeeService.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: service}
}

// MyProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) MyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employeeService.MyProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// UpsertProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var upsertReq employee.UpsertProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&upsertReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.employeeService.UpsertProfile(r.Context(), upsertReq)
	if err != nil {
		slog.Error("UpsertProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile saved successfully", profile)
}

const maxAvatarSize = 5 << 20

// UploadAvatar implements EmployeeHandler. Expects a multipart form
// with the image under the "avatar" field.
func (h *EmployeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Missing avatar file", nil)
		return
	}
	defer file.Close()

	url, err := h.employeeService.UploadAvatar(r.Context(), header.Header.Get("Content-Type"), file)
	if err != nil {
		slog.Error("UploadAvatar service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Avatar updated successfully", map[string]string{"avatar_url": url})
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// AddIncrement implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AddIncrement(w http.ResponseWriter, r *http.Request) {
	var incrementReq employee.CreateIncrementRequest

	if err := json.NewDecoder(r.Body).Decode(&incrementReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	incrementReq.EmployeeID = chi.URLParam(r, "employeeID")

	created, err := h.employeeService.AddIncrement(r.Context(), incrementReq)
	if err != nil {
		slog.Error("AddIncrement service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Salary increment recorded", created)
}

// ListIncrements implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListIncrements(w http.ResponseWriter, r *http.Request) {
	increments, err := h.employeeService.Increments(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Error("ListIncrements service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, increments)
}
