package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/middleware"
)

// fail logs failures the client cannot act on and writes the error response.
func fail(c *gin.Context, log *zap.Logger, err error) {
	switch httperr.KindOf(err) {
	case httperr.KindStorage, httperr.KindUnknown:
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.Error(err),
		)
	}
	httperr.FromError(c, err)
}
