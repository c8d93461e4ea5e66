package handlers

import (
	"github.com/gin-gonic/gin"

	"prepstock/internal/domain/ingredient"
	"prepstock/internal/infrastructure/http/v1/dto"
)

// IngredientHandler provides ingredient catalog endpoints.
type IngredientHandler struct {
	*BaseHandler
	service *ingredient.Service
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(base *BaseHandler, service *ingredient.Service) *IngredientHandler {
	return &IngredientHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers ingredient endpoints on the group.
func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/low-stock", h.LowStock)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/stock", h.UpdateStock)
}

// List handles catalog listing.
// GET /api/v1/ingredients
func (h *IngredientHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), h.UserID(c), q.Filter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIngredientList(result))
}

// Create handles catalog entry creation.
// POST /api/v1/ingredients
func (h *IngredientHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ing := req.ToDomain(h.UserID(c))
	if err := h.service.Create(c.Request.Context(), ing); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromIngredient(ing))
}

// Get handles single entry retrieval.
// GET /api/v1/ingredients/:id
func (h *IngredientHandler) Get(c *gin.Context) {
	ingredientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ing, err := h.service.Get(c.Request.Context(), h.UserID(c), ingredientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIngredient(ing))
}

// Update handles catalog entry replacement.
// PUT /api/v1/ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	ingredientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateIngredientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ing := req.ToDomain(h.UserID(c), ingredientID)
	if err := h.service.Update(c.Request.Context(), h.UserID(c), ing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIngredient(ing))
}

// Delete handles catalog entry removal.
// DELETE /api/v1/ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
	ingredientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.UserID(c), ingredientID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateStock handles a direct stock level write.
// PATCH /api/v1/ingredients/:id/stock
func (h *IngredientHandler) UpdateStock(c *gin.Context) {
	ingredientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	// Ownership check happens through Get before the raw stock write.
	if _, err := h.service.Get(c.Request.Context(), h.UserID(c), ingredientID); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.UpdateStock(c.Request.Context(), ingredientID, req.Stock); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "stock updated")
}

// LowStock lists ingredients at or below the low-stock threshold.
// GET /api/v1/ingredients/low-stock
func (h *IngredientHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context(), h.UserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.IngredientResponse, 0, len(items))
	for _, ing := range items {
		out = append(out, dto.FromIngredient(ing))
	}
	h.OK(c, out)
}
