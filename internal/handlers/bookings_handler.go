package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/daycare-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingUseCases struct {
	Create        *booking.CreateBooking
	CreatePending *booking.CreateBooking
	Update        *booking.UpdateBooking
	UpdateStatus  *booking.UpdateBookingStatus
	Delete        *booking.DeleteBooking
	Get           *booking.GetBooking
	List          *booking.ListBookings
	Attach        *booking.AttachServices
	Summary       *booking.GetServicesSummary
}

type BookingsHandler struct {
	uc BookingUseCases
}

func NewBookingsHandler(uc BookingUseCases) *BookingsHandler {
	return &BookingsHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

// Required fields are checked by the use case so every missing one is
// reported together.
type CreateBookingRequest struct {
	DogID        uint                `json:"dogId"`
	Date         string              `json:"date"`
	CheckInTime  *time.Time          `json:"checkInTime"`
	CheckOutTime *time.Time          `json:"checkOutTime"`
	Notes        string              `json:"notes" binding:"max=500"`
	Services     []pricing.LineInput `json:"services"`
}

type UpdateBookingRequest struct {
	Date         *string              `json:"date"`
	CheckInTime  *time.Time           `json:"checkInTime"`
	CheckOutTime *time.Time           `json:"checkOutTime"`
	Status       *string              `json:"status"`
	Notes        *string              `json:"notes" binding:"omitempty,max=500"`
	Services     *[]pricing.LineInput `json:"services"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AttachServicesRequest struct {
	Services *[]pricing.LineInput `json:"services"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BookingsHandler) Create(c *gin.Context) {
	h.create(c, h.uc.Create)
}

// CreatePending stores the booking without services, status PENDING.
func (h *BookingsHandler) CreatePending(c *gin.Context) {
	h.create(c, h.uc.CreatePending)
}

func (h *BookingsHandler) create(c *gin.Context, uc *booking.CreateBooking) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := uc.Execute(c.Request.Context(), booking.CreateBookingInput{
		Actor:        actorFrom(c),
		DogID:        req.DogID,
		Date:         req.Date,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Notes:        req.Notes,
		Services:     req.Services,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, v)
}

func (h *BookingsHandler) List(c *gin.Context) {
	views, err := h.uc.List.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, views)
}

func (h *BookingsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	v, err := h.uc.Get.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *BookingsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.uc.Update.Execute(c.Request.Context(), booking.UpdateBookingInput{
		Actor:        actorFrom(c),
		BookingID:    id,
		Date:         req.Date,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Status:       req.Status,
		Notes:        req.Notes,
		Services:     req.Services,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *BookingsHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.uc.UpdateStatus.Execute(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *BookingsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Delete.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *BookingsHandler) Services(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, err := h.uc.Summary.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

// AttachServices replaces every service line on the booking.
func (h *BookingsHandler) AttachServices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AttachServicesRequest
	if !bindJSON(c, &req) {
		return
	}
	// An explicit empty list clears the lines; a missing key does not.
	if req.Services == nil {
		httperr.Respond(c, httperr.MissingFields("services"))
		return
	}

	s, err := h.uc.Attach.Execute(c.Request.Context(), actorFrom(c), id, *req.Services)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}
