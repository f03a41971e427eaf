package http

import (
	"math/big"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/dex-router/internal/domain"
	"github.com/hxuan190/dex-router/internal/http/httputil"
	"github.com/hxuan190/dex-router/internal/routing"
)

type RouteHandler struct {
	routingSvc *routing.Service
}

func NewRouteHandler(routingSvc *routing.Service) *RouteHandler {
	return &RouteHandler{routingSvc: routingSvc}
}

func (h *RouteHandler) Root() string {
	return "/routes"
}

func (h *RouteHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("", h.getRoutes)
	pub.GET("/status", h.getStatus)
}

// RouteRequest represents the parameters for requesting venue quotes
type RouteRequest struct {
	// Source asset symbol
	FromAsset string `json:"fromAsset" binding:"required" example:"ckBTC"`

	// Destination asset symbol
	ToAsset string `json:"toAsset" binding:"required" example:"ckUSDC"`

	// Amount in the source asset's smallest denomination
	// For ckBTC with 8 decimals: "100000000" = 1 ckBTC
	Amount string `json:"amount" binding:"required" example:"3000000"`

	// Urgency influences scoring when set to "high" (speed boost)
	// Default: medium
	Urgency string `json:"urgency" enums:"low,medium,high" example:"medium"`

	// Optional routing preference
	Preference string `json:"preference" enums:"fastest,lowest_cost,most_liquid" example:"lowest_cost"`

	// Maximum acceptable price impact in percent; 0 disables the constraint
	SlippageTolerancePercent float64 `json:"slippageTolerancePercent" example:"1.5"`
}

// RoutesResponse contains one scored quote per registered venue, best first
type RoutesResponse struct {
	FromAsset string         `json:"fromAsset"`
	ToAsset   string         `json:"toAsset"`
	Amount    string         `json:"amount"`
	Quotes    []domain.Quote `json:"quotes"`
}

func (h *RouteHandler) parseRouteRequest(c *gin.Context) (domain.RouteRequest, bool) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return domain.RouteRequest{}, false
	}

	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		httputil.BadRequest(c, "invalid amount: must be a positive integer")
		return domain.RouteRequest{}, false
	}

	urgency := domain.Urgency(req.Urgency)
	switch urgency {
	case "":
		urgency = domain.UrgencyMedium
	case domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh:
	default:
		httputil.BadRequest(c, "invalid urgency: must be low, medium or high")
		return domain.RouteRequest{}, false
	}

	pref := domain.Preference(req.Preference)
	switch pref {
	case "", domain.PreferenceFastest, domain.PreferenceLowestCost, domain.PreferenceMostLiquid:
	default:
		httputil.BadRequest(c, "invalid preference: must be fastest, lowest_cost or most_liquid")
		return domain.RouteRequest{}, false
	}

	if req.SlippageTolerancePercent < 0 {
		httputil.BadRequest(c, "invalid slippageTolerancePercent: must be >= 0")
		return domain.RouteRequest{}, false
	}

	return domain.RouteRequest{
		FromAsset:                req.FromAsset,
		ToAsset:                  req.ToAsset,
		Amount:                   amount,
		Urgency:                  urgency,
		Preference:               pref,
		SlippageTolerancePercent: req.SlippageTolerancePercent,
	}, true
}

// @Summary Get scored venue quotes
// @Description Fan the trade out to every registered venue, score the answers and return them best-first.
// @Description Venues that fail, time out or reject the trade still appear in the result as error quotes,
// @Description so the response always carries exactly one entry per registered venue.
// @Description
// @Description **Amount Format:** smallest denomination of the source asset
// @Description (ckBTC has 8 decimals: 1 ckBTC = 100000000).
// @Tags routes
// @Accept json
// @Produce json
// @Param request body RouteRequest true "Trade intent"
// @Success 200 {object} httputil.Response{data=RoutesResponse} "Scored quotes, best first"
// @Failure 400 {object} httputil.Response "Invalid request parameters"
// @Router /api/v1/routes [post]
func (h *RouteHandler) getRoutes(c *gin.Context) {
	req, ok := h.parseRouteRequest(c)
	if !ok {
		return
	}

	quotes := h.routingSvc.GetBestRoutes(c.Request.Context(), req)

	httputil.Success(c, RoutesResponse{
		FromAsset: req.FromAsset,
		ToAsset:   req.ToAsset,
		Amount:    req.Amount.String(),
		Quotes:    quotes,
	})
}

// @Summary Get routing engine status
// @Description Active venues, current scoring weights, performance counters and feature flags.
// @Tags routes
// @Produce json
// @Success 200 {object} httputil.Response{data=routing.Status}
// @Router /api/v1/routes/status [get]
func (h *RouteHandler) getStatus(c *gin.Context) {
	httputil.Success(c, h.routingSvc.Status())
}
