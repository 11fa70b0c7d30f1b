package attendance

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"lsst.org.au/signin/attendance"
	"lsst.org.au/signin/core"
	"lsst.org.au/signin/sheet"
	"lsst.org.au/signin/utils"
	"lsst.org.au/signin/web/common"
)

type Endpoint struct {
	svc *attendance.Service
}

func Register(r *gin.RouterGroup, svc *attendance.Service) {
	endpoint := &Endpoint{svc: svc}
	r.POST("/taps", endpoint.Tap)
	r.POST("/registrations/:id", endpoint.CompleteRegistration)
	r.DELETE("/registrations/:id", endpoint.CancelRegistration)
	r.POST("/manual-clock", endpoint.ManualClock)
	r.DELETE("/rows/:staffName", endpoint.DeleteRow)
	r.GET("/history/:staffName", endpoint.History)
	r.GET("/staff-in", endpoint.StaffIn)
}

type TapDTO struct {
	Token int64 `json:"token" binding:"required"`
}

// registrationResponse tells the caller a tap is parked waiting for a
// name before it can be recorded.
type registrationResponse struct {
	Message string            `json:"message"`
	Ticket  attendance.Ticket `json:"ticket"`
}

func (ep *Endpoint) Tap(c *gin.Context) {
	var dto TapDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.svc.ProcessTap(dto.Token, time.Now())
	if err != nil {
		var reg *attendance.RegistrationRequired
		switch {
		case errors.As(err, &reg):
			c.JSON(http.StatusConflict, registrationResponse{
				Message: "Token not registered",
				Ticket:  reg.Ticket,
			})
		case errors.Is(err, attendance.ErrBusy):
			c.JSON(http.StatusTooManyRequests, common.NewErrorResponse(err.Error()))
		case errors.Is(err, attendance.ErrNoSheetOpen):
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		case errors.Is(err, sheet.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

type CompleteRegistrationDTO struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

func (ep *Endpoint) CompleteRegistration(c *gin.Context) {
	var dto CompleteRegistrationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.svc.CompleteRegistration(c.Param("id"), dto.Name, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
		case errors.Is(err, core.ErrDuplicateKey):
			c.JSON(http.StatusConflict, common.NewErrorResponse("That name or token is already registered"))
		case errors.Is(err, attendance.ErrNoSheetOpen):
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) CancelRegistration(c *gin.Context) {
	if err := ep.svc.CancelRegistration(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

type ManualClockDTO struct {
	StaffName string `json:"staffName" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=in out"`
}

func (ep *Endpoint) ManualClock(c *gin.Context) {
	var dto ManualClockDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.svc.ManualClock(dto.StaffName, dto.Time, attendance.ClockAction(dto.Action))
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrAlreadyOnSheet),
			errors.Is(err, attendance.ErrNotClockedIn),
			errors.Is(err, attendance.ErrAlreadyClockedOut),
			errors.Is(err, attendance.ErrNoSheetOpen):
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		case errors.Is(err, core.ErrNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) DeleteRow(c *gin.Context) {
	result, err := ep.svc.DeleteRow(c.Param("staffName"))
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrRowNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
		case errors.Is(err, attendance.ErrNoSheetOpen):
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) History(c *gin.Context) {
	dateParam := c.DefaultQuery("date", time.Now().Format(utils.DateLayout))
	date, err := time.ParseInLocation(utils.DateLayout, dateParam, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid date"))
		return
	}

	taps, err := ep.svc.History(c.Param("staffName"), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"taps": taps, "count": len(taps)}))
}

func (ep *Endpoint) StaffIn(c *gin.Context) {
	staff, err := ep.svc.StaffCurrentlyIn()
	if err != nil {
		if errors.Is(err, attendance.ErrNoSheetOpen) {
			c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"staff": staff}))
}
