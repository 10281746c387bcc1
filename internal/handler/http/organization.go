package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/organization"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
	organizationService "github.com/saudkhanbpk/ems-backend-go/internal/service/organization"
)

type OrganizationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type OrganizationHandlerImpl struct {
	organizationService organizationService.OrganizationService
}

func NewOrganizationHandler(service organizationService.OrganizationService) OrganizationHandler {
	return &OrganizationHandlerImpl{organizationService: service}
}

// Create implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq organization.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.organizationService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create organization service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Organization created successfully", created)
}

// Get implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.organizationService.Get(r.Context(), chi.URLParam(r, "organizationID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, org)
}

// List implements OrganizationHandler.
func (h *OrganizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.organizationService.List(r.Context())
	if err != nil {
		slog.Error("List organizations service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, orgs)
}

// Delete implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.organizationService.Delete(r.Context(), chi.URLParam(r, "organizationID")); err != nil {
		slog.Error("Delete organization service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Organization deleted successfully", nil)
}
