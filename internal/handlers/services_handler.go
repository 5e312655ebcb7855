package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/daycare-scheduler/internal/usecase/catalog"
)

type ServicesHandler struct {
	services *catalog.Services
}

func NewServicesHandler(services *catalog.Services) *ServicesHandler {
	return &ServicesHandler{services: services}
}

// Prices accept a JSON number or a numeric string.
type CreateServiceRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Description string           `json:"description" binding:"max=250"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Active      *bool            `json:"active"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=250"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// List supports ?active=true to hide deactivated services.
func (h *ServicesHandler) List(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	services, err := h.services.List(c.Request.Context(), actorFrom(c), activeOnly)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServicesHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServicesHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.services.Create(c.Request.Context(), actorFrom(c), catalog.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Active:      req.Active,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServicesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.services.Update(c.Request.Context(), actorFrom(c), id, catalog.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      req.Active,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServicesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
