package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viyasan/FlowPoints/internal/gateway/domain"
	ledgerdomain "github.com/viyasan/FlowPoints/internal/ledger/domain"
	"github.com/viyasan/FlowPoints/internal/pkg/jwt"
)

const (
	UsernameParamKey = "username"
)

type convertRequestBody struct {
	Username string `json:"username" binding:"required"`

	// Points is validated by the conversion workflow so that a zero or
	// too-small amount gets the minimum-threshold message, not a generic
	// binding failure.
	Points      int64  `json:"points"`
	Destination string `json:"flowAddress"`
}

type LedgerHandler struct {
	convertService domain.ConvertService
	accountService domain.AccountInfoService
}

func NewLedgerHandler(convertService domain.ConvertService, accountService domain.AccountInfoService) *LedgerHandler {
	return &LedgerHandler{
		convertService: convertService,
		accountService: accountService,
	}
}

func (h *LedgerHandler) Convert(c *gin.Context) {
	var body convertRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	if !identityMatchesToken(c, body.Username) {
		return
	}

	result, err := h.convertService.Convert(c.Request.Context(), ledgerdomain.ConversionRequest{
		Username:    body.Username,
		Points:      body.Points,
		Destination: body.Destination,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversion":      result.Record,
		"remainingPoints": result.RemainingBalance,
		"transactionId":   result.Record.IssuanceReference,
	})
}

func (h *LedgerHandler) GetBalance(c *gin.Context) {
	username := c.Param(UsernameParamKey)

	if !identityMatchesToken(c, username) {
		return
	}

	balance, err := h.accountService.GetBalance(c.Request.Context(), username)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loyaltyPoints": balance})
}

func (h *LedgerHandler) GetConversions(c *gin.Context) {
	username := c.Param(UsernameParamKey)

	if !identityMatchesToken(c, username) {
		return
	}

	records, err := h.accountService.GetHistory(c.Request.Context(), username)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversions": records})
}

// identityMatchesToken rejects requests addressing an account other than the
// one the bearer token was issued for.
func identityMatchesToken(c *gin.Context, username string) bool {
	tokenUsername := c.GetString(jwt.UsernameContextKey)
	if tokenUsername != username {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "token does not match requested account"})
		return false
	}

	return true
}

func handleDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, &ledgerdomain.AccountNotFoundError{}):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case errors.Is(err, &ledgerdomain.BelowMinimumError{}),
		errors.Is(err, &ledgerdomain.InvalidDestinationError{}),
		errors.Is(err, &ledgerdomain.InsufficientBalanceError{}):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, &ledgerdomain.IssuanceFailedError{}):
		c.JSON(http.StatusInternalServerError, gin.H{"errors": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
