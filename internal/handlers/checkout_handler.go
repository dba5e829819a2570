package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopzone/internal/checkout"
)

type CheckoutHandler struct {
	session *checkout.Session
}

func NewCheckoutHandler(session *checkout.Session) *CheckoutHandler {
	return &CheckoutHandler{session: session}
}

type promoRequest struct {
	Code string `json:"code" binding:"required"`
}

// GET /v1/checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"summary": h.session.Summary(),
		"step":    h.session.Step(),
	})
}

// POST /v1/checkout/shipping
func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	var info checkout.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.session.SubmitShipping(info); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": h.session.Step()})
}

// POST /v1/checkout/payment
func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var info checkout.PaymentInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.session.SubmitPayment(info); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, checkout.ErrIncompleteCheckout) {
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": h.session.Step()})
}

// POST /v1/checkout/promo
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	promo, err := h.session.ApplyPromo(req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid promo code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"promo":   promo,
		"summary": h.session.Summary(),
	})
}

// POST /v1/checkout/confirm
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	order, err := h.session.Confirm()
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, checkout.ErrEmptyCart) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}
