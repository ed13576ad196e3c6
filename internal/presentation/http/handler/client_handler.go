package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/commandes-api/internal/application/service"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/request"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
func (h *ClientHandler) List(c *gin.Context) {
	var req request.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.clientService.ListClients(c.Request.Context(), pageParams(req.Page, req.PerPage), req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Create handles creating a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Name:      req.Name,
		Telephone: req.Telephone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "client")
	if !ok {
		return
	}

	var req request.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		ID:        id,
		Name:      req.Name,
		Telephone: req.Telephone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete handles deleting a client together with its orders
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "client")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// TypeHandler handles product type HTTP requests
type TypeHandler struct {
	typeService *service.TypeService
}

// NewTypeHandler creates a new type handler
func NewTypeHandler(typeService *service.TypeService) *TypeHandler {
	return &TypeHandler{typeService: typeService}
}

// List handles listing types
func (h *TypeHandler) List(c *gin.Context) {
	var req request.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.typeService.ListTypes(c.Request.Context(), pageParams(req.Page, req.PerPage), req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Types retrieved successfully", result)
}

// Create handles creating a type
func (h *TypeHandler) Create(c *gin.Context) {
	var req request.TypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	t, err := h.typeService.CreateType(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Type created successfully", t)
}

// Get handles getting a single type
func (h *TypeHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "type")
	if !ok {
		return
	}

	t, err := h.typeService.GetType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Type retrieved successfully", t)
}

// Update handles renaming a type
func (h *TypeHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "type")
	if !ok {
		return
	}

	var req request.TypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	t, err := h.typeService.UpdateType(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Type updated successfully", t)
}

// Delete handles deleting a type together with its orders
func (h *TypeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "type")
	if !ok {
		return
	}

	if err := h.typeService.DeleteType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
