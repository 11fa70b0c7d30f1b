package sheets

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"lsst.org.au/signin/attendance"
	"lsst.org.au/signin/utils"
	"lsst.org.au/signin/web/common"
)

type Endpoint struct {
	svc *attendance.Service
}

func Register(r *gin.RouterGroup, svc *attendance.Service) {
	endpoint := &Endpoint{svc: svc}
	r.POST("/sheets", endpoint.Open)
	r.GET("/sheets/:date", endpoint.Read)
}

type OpenSheetDTO struct {
	Date common.DateOnly `json:"date"`
}

// Open opens (creating if needed) the sheet for the date and makes it
// the sheet live taps land on. An empty date means today.
func (ep *Endpoint) Open(c *gin.Context) {
	var dto OpenSheetDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	date := dto.Date.Time
	if date.IsZero() {
		date = time.Now()
	}

	rows, err := ep.svc.OpenSheet(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"date": date.Format(utils.DateLayout),
		"rows": rows,
	}))
}

func (ep *Endpoint) Read(c *gin.Context) {
	date, err := time.ParseInLocation(utils.DateLayout, c.Param("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid date"))
		return
	}

	rows, err := ep.svc.ReadSheet(date)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("No sheet for that date"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"date": date.Format(utils.DateLayout),
		"rows": rows,
	}))
}
