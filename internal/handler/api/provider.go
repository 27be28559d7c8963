package api

import (
	"net/http"

	reqdto "appointment-scheduler/internal/handler/dto/request"
	resdto "appointment-scheduler/internal/handler/dto/response"
	"appointment-scheduler/internal/handler/httperr"
	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProviderHandler serves the read views of one provider's book.
type ProviderHandler struct {
	slots    queries.SlotQueries
	calendar queries.CalendarQueries
}

func NewProviderHandler(slots queries.SlotQueries, calendar queries.CalendarQueries) *ProviderHandler {
	return &ProviderHandler{slots: slots, calendar: calendar}
}

// @Summary Available slots
// @Description List bookable start times of a provider on a date
// @Tags providers
// @Produce json
// @Param providerId path string true "Provider ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /providers/{providerId}/slots [get]
func (h *ProviderHandler) Slots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid provider id", nil)
		return
	}
	var q reqdto.SlotsQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	date, err := q.ParseDate()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.slots.GenerateSlots(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotsView(view))
}

// @Summary Calendar
// @Description Group a provider's appointments into day, week or month buckets
// @Tags providers
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param granularity query string true "day, week or month"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end, inclusive (YYYY-MM-DD)"
// @Param includeCancelled query bool false "Include cancelled appointments"
// @Param locale query string false "Week rule: ISO or en_US"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /providers/{providerId}/calendar [get]
func (h *ProviderHandler) Calendar(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid provider id", nil)
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return
	}
	var q reqdto.CalendarQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	req, err := q.ToQuery(providerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	report, err := h.calendar.Aggregate(c.Request.Context(), actor, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromCalendarReport(report)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
