package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

// Checkout builds the provider transaction for an order and sends the
// customer's browser to the hosted payment page. An unknown reference goes
// back to the storefront.
func (s *Server) Checkout(c *gin.Context) {
	reference := c.Param("reference")
	returnTo := c.GetHeader("Referer")

	redirect, err := s.paymentSvc.InitiateCheckout(c.Request.Context(), reference, returnTo)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrInvalidReference) {
			c.Redirect(http.StatusFound, strings.TrimRight(s.cfg.StoreBaseURL, "/"))
			return
		}
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, redirect.URL)
}

// Callback handles the browser return from the hosted payment page. The
// provider appends the transaction reference as the trxref query parameter.
func (s *Server) Callback(c *gin.Context) {
	reference := c.Query("trxref")
	if reference == "" {
		reference = c.Query("reference")
	}

	result, err := s.paymentSvc.CompleteCallback(c.Request.Context(), reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, result.RedirectURL)
}

// Notify handles the asynchronous delivery of the same outcome. The provider
// only needs the status code; the body stays empty.
func (s *Server) Notify(c *gin.Context) {
	reference := c.Query("trxref")
	if reference == "" {
		reference = c.Query("reference")
	}

	if err := s.paymentSvc.CompleteWebhook(c.Request.Context(), reference); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Cancel handles the customer abandoning the hosted payment page.
func (s *Server) Cancel(c *gin.Context) {
	storeID, _ := strconv.ParseInt(c.Query("store_id"), 10, 64)
	customerID, _ := strconv.ParseInt(c.Query("customer_id"), 10, 64)

	redirect, err := s.paymentSvc.CancelReturn(c.Request.Context(), storeID, customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, redirect.URL)
}

// HandlingFee reports the configured additional fee for a cart amount.
func (s *Server) HandlingFee(c *gin.Context) {
	storeID, _ := strconv.ParseInt(c.DefaultQuery("store_id", "0"), 10, 64)
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount < 0 {
		AbortWithError(c, newValidationError("amount", "invalid", "amount must be a non-negative number"))
		return
	}

	fee, err := s.paymentSvc.HandlingFee(c.Request.Context(), storeID, amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"fee": fee}})
}
