package staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"lsst.org.au/signin/core"
	"lsst.org.au/signin/web/common"
)

type Endpoint struct {
	directory *core.StaffDirectory
}

func Register(r *gin.RouterGroup, directory *core.StaffDirectory) {
	endpoint := &Endpoint{directory: directory}
	r.GET("/staff", endpoint.List)
	r.POST("/staff", endpoint.Create)
	r.PUT("/staff/:token", endpoint.Update)
	r.DELETE("/staff/:token", endpoint.Delete)
}

func (ep *Endpoint) List(c *gin.Context) {
	members, err := ep.directory.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(members, int64(len(members))))
}

type StaffCreateDTO struct {
	Token int64  `json:"token" binding:"required"`
	Name  string `json:"name" binding:"required,min=1,max=100"`
}

func (ep *Endpoint) Create(c *gin.Context) {
	var dto StaffCreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := ep.directory.Register(dto.Token, dto.Name); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			c.JSON(http.StatusConflict, common.NewErrorResponse("That name or token is already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{}))
}

type StaffUpdateDTO struct {
	Token int64  `json:"token" binding:"required"`
	Name  string `json:"name" binding:"required,min=1,max=100"`
}

func (ep *Endpoint) Update(c *gin.Context) {
	originalToken, err := strconv.ParseInt(c.Param("token"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid token"))
		return
	}

	var dto StaffUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := ep.directory.Update(originalToken, dto.Token, dto.Name); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
		case errors.Is(err, core.ErrDuplicateKey):
			c.JSON(http.StatusConflict, common.NewErrorResponse("That name or token is already registered"))
		default:
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	token, err := strconv.ParseInt(c.Param("token"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid token"))
		return
	}

	if err := ep.directory.Remove(token); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
