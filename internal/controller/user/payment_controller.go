package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/controller"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/service"
)

type PaymentController struct {
	paymentService      service.PaymentService
	subscriptionService service.SubscriptionService
}

func NewPaymentController(paymentService service.PaymentService, subscriptionService service.SubscriptionService) *PaymentController {
	return &PaymentController{paymentService: paymentService, subscriptionService: subscriptionService}
}

// InitiatePayment godoc
// @Summary (User) Start a subscription purchase
// @Description Creates a gateway checkout session and records a pending payment. The client is redirected to the returned URL.
// @Tags User - Payments & Subscriptions
// @Accept json
// @Produce json
// @Param request body dto.PaymentInitiateDTO true "User, amount and plan"
// @Success 200 {object} dto.PaymentInitiatedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 502 {object} dto.ErrorResponse "Gateway failure"
// @Router /payments/initiate [post]
func (c *PaymentController) InitiatePayment(ctx *gin.Context) {
	var req dto.PaymentInitiateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("InitiatePayment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	initiated, err := c.paymentService.Initiate(req)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("InitiatePayment: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, initiated)
}

// PaymentSuccess godoc
// @Summary (Gateway) Success callback
// @Description Invoked by the payment gateway, not the end user. Idempotent: a repeated callback for a settled payment grants no second subscription.
// @Tags User - Payments & Subscriptions
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction ID"
// @Success 200 {object} dto.PaymentDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown transaction"
// @Router /payments/success [post]
func (c *PaymentController) PaymentSuccess(ctx *gin.Context) {
	tranID, ok := bindTranID(ctx)
	if !ok {
		return
	}
	payment, err := c.paymentService.HandleSuccess(tranID)
	if err != nil {
		log.Warn().Err(err).Str("tran_id", tranID).Msg("PaymentSuccess: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// PaymentFail godoc
// @Summary (Gateway) Failure callback
// @Tags User - Payments & Subscriptions
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction ID"
// @Success 200 {object} dto.PaymentDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown transaction"
// @Router /payments/fail [post]
func (c *PaymentController) PaymentFail(ctx *gin.Context) {
	tranID, ok := bindTranID(ctx)
	if !ok {
		return
	}
	payment, err := c.paymentService.HandleFailure(tranID)
	if err != nil {
		log.Warn().Err(err).Str("tran_id", tranID).Msg("PaymentFail: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// PaymentCancel handles the gateway's cancel callback. It is recorded the
// same way as a failure.
// @Summary (Gateway) Cancel callback
// @Tags User - Payments & Subscriptions
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction ID"
// @Success 200 {object} dto.PaymentDTO
// @Router /payments/cancel [post]
func (c *PaymentController) PaymentCancel(ctx *gin.Context) {
	c.PaymentFail(ctx)
}

// GetMySubscriptions godoc
// @Summary (User) List the user's subscriptions, newest first
// @Tags User - Payments & Subscriptions
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.SubscriptionDTO
// @Router /my-subscriptions [get]
func (c *PaymentController) GetMySubscriptions(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	subscriptions, err := c.subscriptionService.GetUserSubscriptions(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetMySubscriptions: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve subscriptions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, subscriptions)
}

// bindTranID accepts the gateway's form post as well as JSON, since
// SSLCommerz form-posts callbacks but local tooling tends to send JSON.
func bindTranID(ctx *gin.Context) (string, bool) {
	var req dto.PaymentCallbackDTO
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing tran_id", Details: []string{err.Error()}})
		return "", false
	}
	return req.TranID, true
}
