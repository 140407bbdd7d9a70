package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tallybook/internal/middleware"
	"github.com/tallybook/tallybook/internal/models"
	"github.com/tallybook/tallybook/internal/service"
)

// TransactionManager defines the ledger operations used by TransactionHandler.
type TransactionManager interface {
	Create(ctx context.Context, ownerEmail string, in service.CreateTransactionInput) (int64, error)
	List(ctx context.Context, ownerEmail string) ([]models.Transaction, error)
	Delete(ctx context.Context, id int64, ownerEmail string) error
}

type TransactionHandler struct {
	transactions TransactionManager
}

// CreateTransactionRequest mirrors the persisted JSON field names. Amount is
// a pointer so that zero is accepted while a missing amount is rejected.
type CreateTransactionRequest struct {
	Type         string   `json:"type" validate:"required,oneof=income expense"`
	Date         string   `json:"date" validate:"required"`
	Amount       *float64 `json:"amount" validate:"required,gte=0"`
	Category     string   `json:"category" validate:"required"`
	CategoryName string   `json:"categoryName"`
}

type CreateTransactionResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

func NewTransactionHandler(transactions TransactionManager) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	id, err := h.transactions.Create(c.Request.Context(), email, service.CreateTransactionInput{
		Type:         req.Type,
		Date:         req.Date,
		Amount:       *req.Amount,
		Category:     req.Category,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, CreateTransactionResponse{OK: true, ID: id})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	transactions, err := h.transactions.List(c.Request.Context(), email)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), id, email); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
