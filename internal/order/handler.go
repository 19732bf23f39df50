package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/menu"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	SessionID    string     `json:"session_id" binding:"required"`
	StoreID      string     `json:"store_id"`
	TravelerLang string     `json:"traveler_lang"`
	Cart         []CartLine `json:"cart"`
}

// --------------------------------------------------
// Traveler submits a cart
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), SubmitInput{
		SessionID:    req.SessionID,
		StoreID:      req.StoreID,
		TravelerLang: req.TravelerLang,
		Cart:         req.Cart,
	})
	if err != nil {
		respondSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":   result.Order,
		"summary": result.Summary,
	})
}

// respondSubmitError maps the validation taxonomy onto specific responses:
// a known validation problem always names the offending line or condition,
// never a generic 500.
func respondSubmitError(c *gin.Context, err error) {
	var unknownItem *UnknownMenuItemError
	var invalidQty *InvalidQuantityError

	switch {
	case errors.Is(err, ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, menu.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})

	case errors.As(err, &unknownItem):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   unknownItem.Error(),
			"temp_id": unknownItem.TempID,
		})

	case errors.As(err, &invalidQty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   invalidQty.Error(),
			"temp_id": invalidQty.TempID,
		})

	case errors.Is(err, ErrUnknownStore):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, gin.H{"error": "order already processed for this session"})

	case errors.Is(err, ErrPersistenceFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "order could not be stored, please retry",
			"retryable": true,
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// Stored order lookup (durable record)
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	orderID := c.Param("order_id")

	o, s, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   o,
		"summary": s,
	})
}
