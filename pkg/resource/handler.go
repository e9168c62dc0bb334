package resource

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rosterly/rosterly/internal/rest"
	"github.com/rosterly/rosterly/pkg/colorutil"
	"github.com/rosterly/rosterly/pkg/user"
)

type Handler struct {
	service *Service
}

type ResourceDTO struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"textColor,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.GetAll(r.Context())
	if err != nil {
		writeResourceError(w, err)
		return
	}

	dtos := make([]ResourceDTO, 0, len(resources))
	for _, res := range resources {
		dtos = append(dtos, resourceToDTO(res))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := h.service.GetResource(r.Context(), vars["resourceId"])
	if err != nil {
		writeResourceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resourceToDTO(*res)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var dto ResourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.AddResource(r.Context(), dtoToResource(dto))
	if err != nil {
		writeResourceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resourceToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var dto ResourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vars := mux.Vars(r)
	resource := dtoToResource(dto)
	resource.Id = vars["resourceId"]

	updated, err := h.service.ModifyResource(r.Context(), resource)
	if err != nil {
		writeResourceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resourceToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.service.DeleteResource(r.Context(), vars["resourceId"]); err != nil {
		writeResourceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeResourceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid resource",
			Details: validationErr.Error(),
		})
	case errors.Is(err, ErrResourceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resourceToDTO(r Resource) ResourceDTO {
	dto := ResourceDTO{
		Id:    r.Id,
		Name:  r.Name,
		Role:  r.Role,
		Color: r.Color,
	}
	if r.Color != "" {
		dto.TextColor = colorutil.ContrastText(r.Color)
	}
	return dto
}

func dtoToResource(dto ResourceDTO) Resource {
	return Resource{
		Id:    dto.Id,
		Name:  dto.Name,
		Role:  dto.Role,
		Color: dto.Color,
	}
}
