package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/middleware"
	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
	"github.com/noah-isme/athlete-load-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.Claims(c)
}

// requireClaims writes a 401 and returns nil when the request is anonymous.
func requireClaims(c *gin.Context) *models.JWTClaims {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
	}
	return claims
}

// respond writes a 200 envelope, flagging degraded payloads in meta.
func respond(c *gin.Context, data interface{}, pagination *models.Pagination, warning string) {
	response.Degraded(c, warning)
	response.JSON(c, http.StatusOK, data, pagination)
}

func sendFile(c *gin.Context, file *dto.ExportFile) {
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}

func invalidQuery(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters")
}
