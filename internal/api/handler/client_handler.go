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

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(cs *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// GET /clients
func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// POST /clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var dto domain.ClientDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), dto)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create client"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GET /clients/:id
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get client"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// PUT /clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update client"})
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// DELETE /clients/:id
func (h *ClientHandler) DeleteClientByID(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
