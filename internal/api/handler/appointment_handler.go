package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/service"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(as *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: as}
}

// GET /appointments?clientId=&date=&action=&contactMethod=
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	var filter domain.AppointmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	appts, err := h.appointmentService.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GET /appointments/:id
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appt, err := h.appointmentService.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// POST /appointments
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var dto domain.AppointmentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	appt, err := h.appointmentService.CreateAppointment(c.Request.Context(), dto)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create appointment"})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// DELETE /appointments/:id
func (h *AppointmentHandler) DeleteAppointmentByID(c *gin.Context) {
	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

// GET /appointments/:id/history
func (h *AppointmentHandler) GetAppointmentHistory(c *gin.Context) {
	history, err := h.appointmentService.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// PUT /appointments/:id/history
func (h *AppointmentHandler) UpdateAppointmentHistory(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	history, err := h.appointmentService.UpdateHistory(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update history"})
		}
		return
	}
	c.JSON(http.StatusOK, history)
}
