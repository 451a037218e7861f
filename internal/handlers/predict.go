package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"maize_maturity"
	"maize_maturity/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "Maize Maturity Prediction API"
	errPrediction  = "prediction failed"
	errInternal    = "internal error"
	maxRequestBody = 1 << 20 // 1 MB
)

var endpoints = map[string]string{
	"/":        "GET service description",
	"/predict": "POST with RGB, temperature, humidity data",
	"/health":  "GET service health status",
	"/logs":    "GET recorded prediction requests (from, to, type)",
	"/ws":      "GET websocket stream of health status",
	"/metrics": "GET Prometheus metrics",
}

// logAndJSONError logs err (when present) under logKey and writes resp with httpCode.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, resp maize_maturity.ErrorResponse, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, resp)
}

// @Summary      Service description
// @Tags         system
// @Produce      json
// @Success      200  {object}  maize_maturity.InfoResponse
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, maize_maturity.InfoResponse{
		Message:   serviceName,
		Status:    maize_maturity.StatusRunning,
		Endpoints: endpoints,
	})
}

// @Summary      Health check
// @Description  Always 200; inspect status and model_loaded to detect degradation.
// @Tags         system
// @Produce      json
// @Success      200  {object}  maize_maturity.HealthResponse
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Status(c.Request.Context()))
}

// @Summary      Predict kernel maturity
// @Description  R, G, B in [0,255], temperature in [15,45], humidity in [0,100]. Numeric strings are accepted.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        body  body      maize_maturity.PredictRequest  true  "Kernel colour and environment"
// @Success      200   {object}  maize_maturity.PredictResponse
// @Failure      400   {object}  maize_maturity.ErrorResponse
// @Failure      500   {object}  maize_maturity.ErrorResponse
// @Failure      503   {object}  maize_maturity.ErrorResponse
// @Router       /predict [post]
func (h *Handler) predict(c *gin.Context) {
	// an unloaded model answers 503 without the body being read
	var data map[string]any
	if h.services.Prediction.Ready() {
		data = decodeObject(c)
	}

	res, err := h.services.Prediction.Predict(c.Request.Context(), data)
	if err != nil {
		h.respondPredictError(c, err)
		return
	}

	predictionsTotal.WithLabelValues(string(res.Label)).Inc()
	c.JSON(http.StatusOK, maize_maturity.PredictResponse{
		Prediction: string(res.Label),
		Confidence: res.Raw,
		Status:     maize_maturity.StatusSuccess,
	})
}

// respondPredictError maps service errors onto status codes.
func (h *Handler) respondPredictError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, maize_maturity.ErrorResponse{
			Error:  err.Error(),
			Status: maize_maturity.StatusUnavailable,
		})
	case errors.Is(err, service.ErrNoData):
		c.JSON(http.StatusBadRequest, maize_maturity.ErrorResponse{
			Error:  err.Error(),
			Status: maize_maturity.StatusError,
		})
	case errors.As(err, &verr):
		if h.log != nil {
			h.log.Infow("predict_rejected", "reason", verr.Reason, "field", verr.Field)
		}
		c.JSON(http.StatusBadRequest, maize_maturity.ErrorResponse{
			Error:  verr.Reason,
			Status: maize_maturity.StatusError,
		})
	case errors.Is(err, service.ErrPredictionFailed):
		h.logAndJSONError(c, http.StatusInternalServerError, maize_maturity.ErrorResponse{
			Error:   errPrediction,
			Status:  maize_maturity.StatusError,
			Details: err.Error(),
		}, "predict_failed", err)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, maize_maturity.ErrorResponse{
			Error:  errInternal,
			Status: maize_maturity.StatusError,
		}, "predict_unexpected_error", err)
	}
}

// decodeObject reads the body as a single JSON object. It returns nil when the
// body is empty, malformed, followed by trailing data, or not an object.
func decodeObject(c *gin.Context) map[string]any {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil
	}
	return data
}
