package ir

import "github.com/ethereum/go-ethereum/metrics"

var (
	// functionCounter counts functions declared across all modules.
	functionCounter = metrics.NewRegisteredCounter("codegen/functions", nil)
	// blockVariantCounter counts block variants created by the legacy
	// assembly lowering.
	blockVariantCounter = metrics.NewRegisteredCounter("codegen/blocks/variants", nil)
	// blockDivergenceCounter counts the subset of variants created for a
	// key that already had at least one variant, i.e. real stack shape
	// divergences requiring block duplication.
	blockDivergenceCounter = metrics.NewRegisteredCounter("codegen/blocks/divergences", nil)
)
