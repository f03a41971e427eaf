package http

import (
	"math/big"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/dex-router/internal/http/httputil"
	"github.com/hxuan190/dex-router/internal/routing"
)

type VenueHandler struct {
	routingSvc *routing.Service
}

func NewVenueHandler(routingSvc *routing.Service) *VenueHandler {
	return &VenueHandler{routingSvc: routingSvc}
}

func (h *VenueHandler) Root() string {
	return "/venues"
}

func (h *VenueHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listVenues)
	pub.GET("/:name/quote", h.getVenueQuote)
}

// VenueQuoteQuery are the query parameters for a single-venue diagnostic quote
type VenueQuoteQuery struct {
	FromAsset string `form:"fromAsset" binding:"required" example:"ckBTC"`
	ToAsset   string `form:"toAsset" binding:"required" example:"ckUSDC"`
	Amount    string `form:"amount" binding:"required" example:"3000000"`
}

// @Summary List registered venues
// @Description Venue names in registration order.
// @Tags venues
// @Produce json
// @Success 200 {object} httputil.Response{data=[]string}
// @Router /api/v1/venues [get]
func (h *VenueHandler) listVenues(c *gin.Context) {
	httputil.Success(c, h.routingSvc.AvailableVenues())
}

// @Summary Get a single venue's quote
// @Description Diagnostic path that queries one venue directly. Venue failures are
// @Description returned in-band as error quotes; an unknown venue name yields a
// @Description venue_not_found quote rather than a transport error.
// @Tags venues
// @Produce json
// @Param name path string true "Venue name" example("GlacierSwap")
// @Param fromAsset query string true "Source asset symbol" example("ckBTC")
// @Param toAsset query string true "Destination asset symbol" example("ckUSDC")
// @Param amount query string true "Amount in smallest denomination" example("3000000")
// @Success 200 {object} httputil.Response{data=domain.Quote}
// @Failure 400 {object} httputil.Response "Invalid query parameters"
// @Router /api/v1/venues/{name}/quote [get]
func (h *VenueHandler) getVenueQuote(c *gin.Context) {
	var query VenueQuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	amount, ok := new(big.Int).SetString(query.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		httputil.BadRequest(c, "invalid amount: must be a positive integer")
		return
	}

	quote := h.routingSvc.GetVenueQuote(c.Request.Context(), c.Param("name"), query.FromAsset, query.ToAsset, amount)
	httputil.Success(c, quote)
}
