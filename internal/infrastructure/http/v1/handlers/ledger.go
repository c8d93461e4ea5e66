package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"prepstock/internal/domain/ledger"
	"prepstock/internal/infrastructure/http/v1/dto"
)

// LedgerHandler provides expense and sale endpoints plus the monthly summary.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers ledger endpoints on the group.
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/expenses", h.ListExpenses)
	rg.POST("/expenses", h.CreateExpense)
	rg.DELETE("/expenses/:id", h.DeleteExpense)
	rg.GET("/sales", h.ListSales)
	rg.POST("/sales", h.CreateSale)
	rg.DELETE("/sales/:id", h.DeleteSale)
	rg.GET("/summary", h.MonthlySummary)
}

// CreateExpense records an expense.
// POST /api/v1/ledger/expenses
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e := req.ToDomain(h.UserID(c))
	if err := h.service.AddExpense(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// ListExpenses lists one month of expenses.
// GET /api/v1/ledger/expenses
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	var q dto.MonthQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.Expenses(c.Request.Context(), h.UserID(c), q.ToDomain(time.Now().UTC()))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// DeleteExpense removes an expense record.
// DELETE /api/v1/ledger/expenses/:id
func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	expenseID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(c.Request.Context(), h.UserID(c), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSale records a sale.
// POST /api/v1/ledger/sales
func (h *LedgerHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale := req.ToDomain(h.UserID(c))
	if err := h.service.AddSale(c.Request.Context(), sale); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, sale)
}

// ListSales lists one month of sales.
// GET /api/v1/ledger/sales
func (h *LedgerHandler) ListSales(c *gin.Context) {
	var q dto.MonthQuery
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.Sales(c.Request.Context(), h.UserID(c), q.ToDomain(time.Now().UTC()))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// DeleteSale removes a sale record.
// DELETE /api/v1/ledger/sales/:id
func (h *LedgerHandler) DeleteSale(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteSale(c.Request.Context(), h.UserID(c), saleID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// MonthlySummary totals one month of activity.
// GET /api/v1/ledger/summary
func (h *LedgerHandler) MonthlySummary(c *gin.Context) {
	var q dto.MonthQuery
	if !h.BindQuery(c, &q) {
		return
	}

	summary, err := h.service.MonthlySummary(c.Request.Context(), h.UserID(c), q.ToDomain(time.Now().UTC()))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
