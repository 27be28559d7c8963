package api

import (
	"net/http"

	"appointment-scheduler/internal/domain/user"
	reqdto "appointment-scheduler/internal/handler/dto/request"
	resdto "appointment-scheduler/internal/handler/dto/response"
	"appointment-scheduler/internal/handler/httperr"
	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/commands"
	"appointment-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	cmds               commands.ScheduleCommands
	q                  queries.ScheduleQueries
	defaultSlotMinutes int
}

func NewScheduleHandler(cmds commands.ScheduleCommands, q queries.ScheduleQueries, cfg config.Config) *ScheduleHandler {
	return &ScheduleHandler{cmds: cmds, q: q, defaultSlotMinutes: cfg.Booking.DefaultSlotMinutes}
}

// @Summary List availability
// @Description List a provider's weekly availability rows, inactive ones included
// @Tags schedule
// @Produce json
// @Param providerId path string true "Provider ID"
// @Success 200 {array} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /providers/{providerId}/availability [get]
func (h *ScheduleHandler) ListAvailability(c *gin.Context) {
	providerID, ok := providerParam(c)
	if !ok {
		return
	}
	views, err := h.q.ListAvailability(c.Request.Context(), providerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromAvailabilityList(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create availability
// @Description Open a weekday for booking. One row per weekday.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.CreateAvailabilityRequest true "Availability"
// @Success 201 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /providers/{providerId}/availability [post]
func (h *ScheduleHandler) CreateAvailability(c *gin.Context) {
	providerID, actor, ok := providerAndActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(h.defaultSlotMinutes)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreateAvailability(c.Request.Context(), actor, providerID, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Toggle availability
// @Description Activate or deactivate an availability row
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param id path string true "Availability ID"
// @Param request body reqdto.SetAvailabilityActiveRequest true "Active flag"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /providers/{providerId}/availability/{id} [patch]
func (h *ScheduleHandler) SetAvailabilityActive(c *gin.Context) {
	providerID, actor, ok := providerAndActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.SetAvailabilityActiveRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	view, err := h.cmds.SetAvailabilityActive(c.Request.Context(), actor, providerID, id, *req.IsActive)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List holidays
// @Description List a provider's holidays in an inclusive date range
// @Tags schedule
// @Produce json
// @Param providerId path string true "Provider ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.HolidayResponse
// @Failure 400 {object} httperr.Response
// @Router /providers/{providerId}/holidays [get]
func (h *ScheduleHandler) ListHolidays(c *gin.Context) {
	providerID, ok := providerParam(c)
	if !ok {
		return
	}
	var q reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	from, to, err := q.Parse()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.ListHolidays(c.Request.Context(), providerID, from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromHolidayList(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create holiday
// @Description Block a full day or part of a day
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.CreateHolidayRequest true "Holiday"
// @Success 201 {object} resdto.HolidayResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /providers/{providerId}/holidays [post]
func (h *ScheduleHandler) CreateHoliday(c *gin.Context) {
	providerID, actor, ok := providerAndActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreateHoliday(c.Request.Context(), actor, providerID, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromHolidayView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Delete holiday
// @Tags schedule
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param id path string true "Holiday ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /providers/{providerId}/holidays/{id} [delete]
func (h *ScheduleHandler) DeleteHoliday(c *gin.Context) {
	providerID, actor, ok := providerAndActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.DeleteHoliday(c.Request.Context(), actor, providerID, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func providerParam(c *gin.Context) (uuid.UUID, bool) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid provider id", nil)
		return uuid.Nil, false
	}
	return providerID, true
}

func providerAndActor(c *gin.Context) (uuid.UUID, user.Actor, bool) {
	providerID, ok := providerParam(c)
	if !ok {
		return uuid.Nil, user.Actor{}, false
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return uuid.Nil, user.Actor{}, false
	}
	return providerID, actor, true
}
