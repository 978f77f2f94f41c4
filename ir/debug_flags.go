package ir

import (
	"os"

	"github.com/ethereum/go-ethereum/log"
)

// Verbose lowering traces are off by default. The hot path emits one record
// per declared function and per created block variant, which is far too
// noisy for production but invaluable when a reconciliation bug reorders a
// stack.
var verboseLowering = os.Getenv("CODEGEN_TRACE") == "1"

// EnableLoweringTrace toggles verbose lowering traces at runtime, overriding
// the CODEGEN_TRACE environment variable.
func EnableLoweringTrace(enabled bool) {
	verboseLowering = enabled
}

func traceLog(msg string, ctx ...interface{}) {
	if verboseLowering {
		log.Debug(msg, ctx...)
	}
}
