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

type CarHandler struct {
	clientService *service.ClientService
}

func NewCarHandler(cs *service.ClientService) *CarHandler {
	return &CarHandler{clientService: cs}
}

// GET /clients/:id/cars
func (h *CarHandler) GetCarsByClient(c *gin.Context) {
	cars, err := h.clientService.ListCars(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list cars"})
		return
	}
	c.JSON(http.StatusOK, cars)
}

// POST /clients/:id/cars
func (h *CarHandler) AddCarToClient(c *gin.Context) {
	var dto domain.CarDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	car, err := h.clientService.AddCar(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, repository.ErrDuplicateEntry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add car"})
		}
		return
	}
	c.JSON(http.StatusCreated, car)
}

// PUT /clients/:id/cars/:carId
func (h *CarHandler) UpdateCarByID(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	car, err := h.clientService.UpdateCar(c.Request.Context(), c.Param("id"), c.Param("carId"), body)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, repository.ErrDuplicateEntry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client or car not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update car"})
		}
		return
	}
	c.JSON(http.StatusOK, car)
}

// DELETE /clients/:id/cars/:carId
func (h *CarHandler) DeleteCarByID(c *gin.Context) {
	err := h.clientService.DeleteCar(c.Request.Context(), c.Param("id"), c.Param("carId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client or car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete car"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "car deleted"})
}
