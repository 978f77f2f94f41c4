package optimizer

import "tinygo.org/x/go-llvm"

// PassRunner runs a pass pipeline over a module. Implemented by the target
// machine wrapper, which owns the pass builder options.
type PassRunner interface {
	RunPasses(module llvm.Module, passes string) error
}

// Optimizer applies the configured middle-end pipeline to modules.
type Optimizer struct {
	settings Settings
}

// New returns an optimizer with the given settings.
func New(settings Settings) *Optimizer {
	return &Optimizer{settings: settings}
}

// Settings returns the active settings.
func (o *Optimizer) Settings() Settings {
	return o.settings
}

// IsSizeFallbackAvailable reports whether a failed build may retry with size
// settings: the fallback must be enabled and the optimizer must not already
// be at the strongest size level.
func (o *Optimizer) IsSizeFallbackAvailable() bool {
	return o.settings.FallbackToSize && o.settings.MiddleEndChar() != 'z'
}

// FallBackToSize switches the optimization levels to the size preset while
// keeping the pipeline toggles and size hints.
func (o *Optimizer) FallBackToSize() {
	size := Size()
	o.settings.MiddleEnd = size.MiddleEnd
	o.settings.MiddleEndSize = size.MiddleEndSize
	o.settings.BackEnd = size.BackEnd
}

// Run applies the configured pipeline to the module.
func (o *Optimizer) Run(runner PassRunner, module llvm.Module) error {
	return runner.RunPasses(module, o.settings.Pipeline())
}
