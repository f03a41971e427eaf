package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/dex-router/internal/common"
	"github.com/hxuan190/dex-router/internal/config"
	"github.com/hxuan190/dex-router/internal/http"
	"github.com/hxuan190/dex-router/internal/routing"
)

// @title DEX Router API
// @version 1.0
// @description Multi-venue swap quote aggregation and scoring engine.
// @description
// @description ## - Features
// @description - **Concurrent Venue Fan-out**: Every registered venue is queried in parallel with a per-venue timeout
// @description - **Weighted Scoring**: Price impact, fee, speed, liquidity depth and availability combined under operator-tunable weights
// @description - **Badges**: RECOMMENDED / CHEAPEST / ADVANCED / FASTEST labels computed per batch
// @description - **Slippage Protection**: Quotes above the caller's tolerance are demoted to constraint_violation error quotes
// @description - **Complete Results**: Failing venues stay in the response as structured error quotes, never dropped
// @description
// @description ## - Venues
// @description | Venue | Model | Fee |
// @description |-------|-------|-----|
// @description | **GlacierSwap** | AMM pools, ICP hub routing | 0.20% |
// @description | **Floeberg** | On-chain orderbook | 0.10-0.25% tiered |
// @description | **AuroraDex** | Simple swap pools | 0.30% |
// @description
// @description ## - Usage Tips
// @description - Amounts are in the source asset's smallest denomination
// @description - ckBTC has 8 decimals: 1 ckBTC = 100000000
// @description - Rate limit: 10 requests/second (burst: 20)
// @host localhost:8080
// @BasePath /
// @schemes http
// @tag.name routes
// @tag.description Aggregate and score quotes across all registered venues
// @tag.name venues
// @tag.description Inspect registered venues and query them individually
// @tag.name admin
// @tag.description Operator endpoints for scoring weights and performance counters

func main() {
	common.InitRuntime()

	// load env
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}
	common.InitLogger(os.Getenv("LOG_LEVEL"))

	// di container config
	conf := container.NewConf(
		&config.GeneralConfig{},
		&config.RoutingConfig{},
	)

	// di container
	dic, err := container.New(
		conf,

		&routing.Service{},
		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
