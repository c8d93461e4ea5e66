package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
	"prepstock/internal/domain/recipe"
	"prepstock/internal/infrastructure/http/v1/dto"
)

// RecipeHandler provides recipe endpoints, including cost rollup and the
// stock availability pre-check.
type RecipeHandler struct {
	*BaseHandler
	service *recipe.Service
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(base *BaseHandler, service *recipe.Service) *RecipeHandler {
	return &RecipeHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers recipe endpoints on the group.
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/validate-stock", h.ValidateStock)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/cost", h.Cost)
}

// List handles recipe listing.
// GET /api/v1/recipes
func (h *RecipeHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), h.UserID(c), q.Filter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecipeList(result))
}

// Create handles recipe creation with stock deduction.
// POST /api/v1/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := req.ToDomain(h.UserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), rec)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !result.Stock.OK() {
		h.Error(c, insufficientStockError(result))
		return
	}
	h.Created(c, dto.FromRecipe(result.Recipe))
}

// Get handles single recipe retrieval.
// GET /api/v1/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), h.UserID(c), recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecipe(rec))
}

// Update handles recipe replacement with net stock adjustment.
// PUT /api/v1/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := req.ToDomain(h.UserID(c), recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), h.UserID(c), rec)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !result.Stock.OK() {
		h.Error(c, insufficientStockError(result))
		return
	}
	h.OK(c, dto.FromRecipe(result.Recipe))
}

// Delete removes a recipe document. Stock is not restored.
// DELETE /api/v1/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.UserID(c), recipeID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Cost returns the cost breakdown for a recipe.
// GET /api/v1/recipes/:id/cost
func (h *RecipeHandler) Cost(c *gin.Context) {
	recipeID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	breakdown, err := h.service.Cost(c.Request.Context(), h.UserID(c), recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, breakdown)
}

// ValidateStock runs the availability pre-check without persisting.
// POST /api/v1/recipes/validate-stock
func (h *RecipeHandler) ValidateStock(c *gin.Context) {
	var req dto.ValidateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	usage, err := dto.ParseUsage(req.Ingredients)
	if err != nil {
		h.Error(c, err)
		return
	}

	var previousID *id.ID
	if req.PreviousRecipeID != nil {
		parsed, err := id.Parse(*req.PreviousRecipeID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid previous recipe id").
				WithDetail("field", "previousRecipeId"))
			return
		}
		previousID = &parsed
	}

	result, err := h.service.ValidateStock(c.Request.Context(), h.UserID(c), usage, previousID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// insufficientStockError converts a failed availability check into the
// structured shortage error.
func insufficientStockError(result recipe.CommitResult) error {
	appErr := apperror.NewInsufficientStock(result.Stock.Insufficient)
	if len(result.Stock.Missing) > 0 {
		appErr = appErr.WithDetail("missing", result.Stock.Missing)
	}
	return appErr
}
