package web

import (
	"github.com/gin-gonic/gin"
	"lsst.org.au/signin/attendance"
	"lsst.org.au/signin/config"
	attendancehandler "lsst.org.au/signin/web/handlers/attendance"
	"lsst.org.au/signin/web/handlers/auth"
	"lsst.org.au/signin/web/handlers/sheets"
	"lsst.org.au/signin/web/handlers/staff"
	"lsst.org.au/signin/web/middlewares"
)

// NewRouter assembles the kiosk's local HTTP surface. The desktop shell
// is the only intended client; the listener should stay on loopback.
func NewRouter(svc *attendance.Service, settings *config.Settings) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/api/v1/info", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"title":     settings.AppTitle,
			"adminMode": settings.AdminMode,
		})
	})

	api := r.Group("/api/v1")
	{
		attendancehandler.Register(api, svc)
		sheets.Register(api, svc)
		auth.Register(api, settings.AdminPassword, []byte(settings.JWTSecret))
	}

	if settings.AdminMode {
		admin := r.Group("/api/v1/admin")
		admin.Use(middlewares.Authentication([]byte(settings.JWTSecret)))
		{
			staff.Register(admin, svc.Directory())
		}
	}

	return r
}
