package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"github.com/x5labs/giftwheel/internal/services/draw"
)

// Handler holds the dependencies for the HTTP handlers
type Handler struct {
	drawService draw.Service
}

// Config holds the configuration for the web handler
type Config struct {
	// Draw service
	DrawService draw.Service
}

// New creates a new web handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DrawService == nil {
		return nil, errors.New("draw service cannot be nil")
	}

	return &Handler{
		drawService: cfg.DrawService,
	}, nil
}

// RegisterRoutes registers all the application routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/sessions", h.StartSession)
	api.POST("/sessions/:id/validate", h.ValidateCredential)
	api.POST("/sessions/:id/spin", h.Spin)
	api.POST("/sessions/:id/complete", h.CompleteSpin)
	api.POST("/sessions/:id/reset", h.ResetSession)
	api.DELETE("/sessions/:id", h.EndSession)
	api.GET("/wheel", h.DescribeWheel)
	api.GET("/redemptions", h.ListRedemptions)
	api.DELETE("/redemptions", h.ClearRedemptions)
}

// StartSession opens a new interaction. The allow-list is refreshed
// best-effort so a list published since the last session is picked up.
func (h *Handler) StartSession(c *gin.Context) {
	if _, err := h.drawService.RefreshAllowlist(c.Request.Context(), &draw.RefreshAllowlistInput{}); err != nil {
		logger.Warningf("allow-list refresh failed: %v", err)
	}

	output, err := h.drawService.StartSession(c.Request.Context(), &draw.StartSessionInput{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{SessionID: output.SessionID})
}

// ValidateCredential checks the supplied password and unlocks the session
func (h *Handler) ValidateCredential(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "bad_request",
			Message: "password is required",
		})
		return
	}

	_, err := h.drawService.ValidateCredential(c.Request.Context(), &draw.ValidateCredentialInput{
		SessionID:  c.Param("id"),
		Credential: req.Password,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Spin runs the draw and returns the animation plan
func (h *Handler) Spin(c *gin.Context) {
	output, err := h.drawService.Spin(c.Request.Context(), &draw.SpinInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, spinResponse{
		ChosenIndex:           output.ChosenIndex,
		TargetRotationDegrees: output.TargetRotationDegrees,
		SpinSeconds:           output.SpinSeconds,
		Label:                 output.Label,
		Prize: prizeResponse{
			Kind:  string(output.Prize.Kind),
			Title: output.Prize.Title,
			Body:  output.Prize.Body,
			URI:   output.Prize.URI,
		},
	})
}

// CompleteSpin commits the redemption after the animation finished
func (h *Handler) CompleteSpin(c *gin.Context) {
	output, err := h.drawService.CompleteSpin(c.Request.Context(), &draw.CompleteSpinInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, completeResponse{
		Redeemed:        true,
		StorageDegraded: output.StorageDegraded,
	})
}

// ResetSession returns the session to its initial phase
func (h *Handler) ResetSession(c *gin.Context) {
	_, err := h.drawService.ResetSession(c.Request.Context(), &draw.ResetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// EndSession discards the session when the dialog closes
func (h *Handler) EndSession(c *gin.Context) {
	_, err := h.drawService.EndSession(c.Request.Context(), &draw.EndSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DescribeWheel returns the display-only wheel description
func (h *Handler) DescribeWheel(c *gin.Context) {
	output, err := h.drawService.DescribeWheel(c.Request.Context(), &draw.DescribeWheelInput{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	segments := make([]wheelSegmentResponse, 0, len(output.Segments))
	for _, segment := range output.Segments {
		segments = append(segments, wheelSegmentResponse{
			Label:    segment.Label,
			ImageURI: segment.ImageURI,
		})
	}

	c.JSON(http.StatusOK, wheelResponse{
		Segments:    segments,
		SpinSeconds: output.SpinSeconds,
	})
}

// ListRedemptions returns the local redemption history
func (h *Handler) ListRedemptions(c *gin.Context) {
	output, err := h.drawService.ListRedemptions(c.Request.Context(), &draw.ListRedemptionsInput{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	records := make([]redemptionResponse, 0, len(output.Records))
	for _, record := range output.Records {
		records = append(records, redemptionResponse{
			Credential:       record.Credential,
			RedeemedAtMillis: record.RedeemedAtMillis,
		})
	}

	c.JSON(http.StatusOK, records)
}

// ClearRedemptions erases the history on explicit user request
func (h *Handler) ClearRedemptions(c *gin.Context) {
	output, err := h.drawService.ClearRedemptions(c.Request.Context(), &draw.ClearRedemptionsInput{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, completeResponse{
		Redeemed:        false,
		StorageDegraded: output.StorageDegraded,
	})
}

// renderError maps service errors to HTTP statuses and a stable error code
// the widget can branch on
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draw.ErrSystemNotReady):
		c.JSON(http.StatusServiceUnavailable, errorResponse{
			Code:    "system_not_ready",
			Message: "the password list has not loaded yet, try again shortly",
		})
	case errors.Is(err, draw.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    "invalid_credential",
			Message: "that password is not valid",
		})
	case errors.Is(err, draw.ErrAlreadyRedeemed):
		c.JSON(http.StatusConflict, errorResponse{
			Code:    "already_redeemed",
			Message: "that password has already been used",
		})
	case errors.Is(err, draw.ErrAlreadySpun):
		c.JSON(http.StatusConflict, errorResponse{
			Code:    "already_spun",
			Message: "this session has already spun the wheel",
		})
	case errors.Is(err, draw.ErrInvalidState):
		c.JSON(http.StatusConflict, errorResponse{
			Code:    "invalid_state",
			Message: "that action is not allowed right now",
		})
	case errors.Is(err, draw.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Code:    "session_not_found",
			Message: "unknown or expired session",
		})
	default:
		logger.Errorf("unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Code:    "internal",
			Message: "something went wrong",
		})
	}
}
