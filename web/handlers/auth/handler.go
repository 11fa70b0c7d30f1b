package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"lsst.org.au/signin/security"
	"lsst.org.au/signin/web/common"
)

// Admin sessions stay short: the kiosk sits on a shared bench and the
// token only guards the staff administration routes.
const sessionSeconds = 30 * 60

type Endpoint struct {
	adminPassword string
	jwtSecret     []byte
}

func Register(r *gin.RouterGroup, adminPassword string, jwtSecret []byte) {
	endpoint := &Endpoint{adminPassword: adminPassword, jwtSecret: jwtSecret}
	r.POST("/admin/login", endpoint.Login)
}

type LoginDTO struct {
	Password string `json:"password" binding:"required"`
}

func (ep *Endpoint) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if subtle.ConstantTimeCompare([]byte(dto.Password), []byte(ep.adminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid password"))
		return
	}

	token, err := security.CreateAdminToken(ep.jwtSecret, sessionSeconds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"token": token}))
}
