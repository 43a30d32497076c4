package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/service"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/response"
)

// ProjectHandler handles project HTTP requests.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ProjectRequest is the body of project create and update calls.
type ProjectRequest struct {
	Nome            string     `json:"nome" validate:"required,max=200"`
	Descricao       string     `json:"descricao" validate:"max=2000"`
	Status          string     `json:"status" validate:"omitempty,oneof=planejamento em_andamento concluido cancelado"`
	DataInicio      *time.Time `json:"data_inicio"`
	DataFimPrevista *time.Time `json:"data_fim_prevista"`
	Responsavel     string     `json:"responsavel" validate:"max=200"`
}

func (req ProjectRequest) toModel() (*model.Project, *apierror.Error) {
	p := &model.Project{
		Nome:            req.Nome,
		Descricao:       req.Descricao,
		Status:          model.ProjectStatus(req.Status),
		DataFimPrevista: req.DataFimPrevista,
		Responsavel:     req.Responsavel,
	}
	if req.DataInicio != nil {
		p.DataInicio = *req.DataInicio
	}
	if req.DataInicio != nil && req.DataFimPrevista != nil && req.DataFimPrevista.Before(*req.DataInicio) {
		return nil, apierror.ValidationError("request validation failed", apierror.FieldError{
			Field:   "data_fim_prevista",
			Message: "must not be before data_inicio",
		})
	}
	return p, nil
}

// List handles GET /api/v1/projetos?status=&limit=
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.ProjectStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.Error(w, apierror.BadRequest("unknown status"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("limit must be an integer"))
			return
		}
		limit = n
	}

	page, err := h.service.List(r.Context(), status, limit)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to list projects"))
		return
	}
	response.Paginated(w, page.Items, 1, page.Limit, page.Total)
}

// Get handles GET /api/v1/projetos/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	response.OK(w, p)
}

// Create handles POST /api/v1/projetos
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	p, apiErr := req.toModel()
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	created, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	response.Created(w, created)
}

// Update handles PUT /api/v1/projetos/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	p, apiErr := req.toModel()
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	if p.Status == "" {
		p.Status = model.ProjectPlanning
	}
	if p.DataInicio.IsZero() {
		p.DataInicio = time.Now().UTC()
	}

	updated, err := h.service.Update(r.Context(), id, p)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	response.OK(w, updated)
}

// Delete handles DELETE /api/v1/projetos/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeProjectError(w, err)
		return
	}
	response.NoContent(w)
}

func projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(w, apierror.BadRequest("invalid project id"))
		return 0, false
	}
	return id, true
}

func writeProjectError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Error(w, apierror.NotFound("project not found"))
		return
	}
	response.Error(w, apierror.InternalError("project operation failed"))
}
