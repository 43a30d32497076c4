package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/pricing"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/response"
)

// PricingHandler serves move-cost estimates.
type PricingHandler struct {
	service *pricing.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(service *pricing.Service) *PricingHandler {
	return &PricingHandler{service: service}
}

// Estimate handles POST /api/v1/move-cost/estimate
func (h *PricingHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req pricing.Request
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	res, err := h.service.Estimate(r.Context(), req)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to estimate move cost"))
		return
	}

	if !res.Success {
		apiErr := apierror.ValidationError(res.Error)
		if verr := req.Validate(); verr != nil {
			apiErr = apiErr.WithDetails(apierror.FieldError{Field: verr.Field, Message: verr.Message})
		}
		response.Error(w, apiErr)
		return
	}

	response.OK(w, res)
}
