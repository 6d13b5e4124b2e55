package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/garage-booking/internal/dto"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/httpresp"
	"github.com/BruksfildServices01/garage-booking/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/garage-booking/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *ucCatalog.Services
	log      *zap.Logger
}

func NewServiceHandler(services *ucCatalog.Services, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, log: log}
}

// --------- Public ---------

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.services.ListActive(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Info(c *gin.Context) {
	var req dto.ServiceInfoRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ongeldige gegevens.")
		return
	}

	s, err := h.services.Info(c.Request.Context(), req.ServiceName)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"service": s,
	})
}

// --------- Admin ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var in catalog.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ongeldige gegevens.")
		return
	}

	s, err := h.services.Create(c.Request.Context(), middleware.AdminName(c), in)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in catalog.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ongeldige gegevens.")
		return
	}

	s, err := h.services.Update(c.Request.Context(), middleware.AdminName(c), id, in)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), middleware.AdminName(c), id); err != nil {
		fail(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Ongeldig ID.")
		return 0, false
	}
	return uint(id), true
}
