package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/http/httputil"
	"github.com/hxuan190/dex-router/internal/routing"
)

type AdminHandler struct {
	routingSvc *routing.Service
}

func NewAdminHandler(routingSvc *routing.Service) *AdminHandler {
	return &AdminHandler{routingSvc: routingSvc}
}

func (h *AdminHandler) Root() string {
	return ""
}

func (h *AdminHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	admin.PUT("/weights", h.updateWeights)
	admin.GET("/perf", h.getPerf)
	admin.POST("/perf/reset", h.resetPerf)
}

// @Summary Update scoring weights
// @Description Partial update of the scoring weight configuration. Omitted fields keep
// @Description their current value; negative values are rejected and leave the weights
// @Description untouched. The result is persisted and applies to subsequent requests.
// @Tags admin
// @Accept json
// @Produce json
// @Param patch body domain.WeightsPatch true "Weight fields to change"
// @Success 200 {object} httputil.Response{data=domain.ScoringWeights}
// @Failure 400 {object} httputil.Response "Invalid weight values"
// @Router /api/v1/admin/weights [put]
func (h *AdminHandler) updateWeights(c *gin.Context) {
	var patch domain.WeightsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.routingSvc.UpdateScoringWeights(patch); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	httputil.Success(c, h.routingSvc.ScoringWeights())
}

// @Summary Get performance counters
// @Description Cumulative request count, venue timeout count, EWMA latency and uptime.
// @Tags admin
// @Produce json
// @Success 200 {object} httputil.Response{data=routing.PerformanceSnapshot}
// @Router /api/v1/admin/perf [get]
func (h *AdminHandler) getPerf(c *gin.Context) {
	httputil.Success(c, h.routingSvc.PerformanceSnapshot())
}

// @Summary Reset performance counters
// @Description Zeroes the cumulative counters and restarts the uptime clock.
// @Tags admin
// @Produce json
// @Success 200 {object} httputil.Response{data=routing.PerformanceSnapshot}
// @Router /api/v1/admin/perf/reset [post]
func (h *AdminHandler) resetPerf(c *gin.Context) {
	h.routingSvc.ResetPerformanceMetrics()
	httputil.Success(c, h.routingSvc.PerformanceSnapshot())
}
