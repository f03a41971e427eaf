package common

import (
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

const (
	defaultGOGC          = 400
	defaultMemLimitBytes = 2 * 1024 * 1024 * 1024
)

// InitRuntime applies latency-oriented runtime defaults. Environment variables
// GOGC, GOMAXPROCS and GOMEMLIMIT always win over these defaults.
func InitRuntime() {
	if os.Getenv("GOGC") == "" {
		debug.SetGCPercent(defaultGOGC)
		log.Info().Int("GOGC", defaultGOGC).Msg("[runtime] set GOGC")
	}

	if os.Getenv("GOMAXPROCS") == "" {
		procs := runtime.NumCPU()
		if procs < 1 {
			procs = 1
		}
		runtime.GOMAXPROCS(procs)
		log.Info().Int("GOMAXPROCS", procs).Msg("[runtime] set GOMAXPROCS")
	}

	if os.Getenv("GOMEMLIMIT") == "" {
		debug.SetMemoryLimit(defaultMemLimitBytes)
		log.Info().Int64("GOMEMLIMIT_bytes", defaultMemLimitBytes).Msg("[runtime] set memory limit")
	}

	logRuntimeSettings()
}

func logRuntimeSettings() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Info().
		Int("num_cpu", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Uint64("heap_alloc_mb", memStats.HeapAlloc/1024/1024).
		Str("go_version", runtime.Version()).
		Msg("[runtime] current runtime settings")
}
