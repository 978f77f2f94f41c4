package optimizer

import (
	"errors"
	"testing"

	"tinygo.org/x/go-llvm"
)

func TestFromCLI(t *testing.T) {
	tests := []struct {
		level byte
		want  Settings
	}{
		{'0', Settings{MiddleEnd: 0, MiddleEndSize: SizeLevelZero, BackEnd: llvm.CodeGenLevelNone}},
		{'1', Settings{MiddleEnd: 1, MiddleEndSize: SizeLevelZero, BackEnd: llvm.CodeGenLevelLess}},
		{'2', Settings{MiddleEnd: 2, MiddleEndSize: SizeLevelZero, BackEnd: llvm.CodeGenLevelDefault}},
		{'3', Settings{MiddleEnd: 3, MiddleEndSize: SizeLevelZero, BackEnd: llvm.CodeGenLevelAggressive}},
		{'s', Settings{MiddleEnd: 2, MiddleEndSize: SizeLevelS, BackEnd: llvm.CodeGenLevelAggressive}},
		{'z', Settings{MiddleEnd: 2, MiddleEndSize: SizeLevelZ, BackEnd: llvm.CodeGenLevelAggressive}},
	}
	for _, test := range tests {
		got, err := FromCLI(test.level)
		if err != nil {
			t.Fatalf("FromCLI(%q): %v", test.level, err)
		}
		if got != test.want {
			t.Errorf("FromCLI(%q) = %+v, want %+v", test.level, got, test.want)
		}
	}

	_, err := FromCLI('x')
	if err == nil || err.Error() != "unexpected optimization option 'x'" {
		t.Errorf("FromCLI('x') error = %v", err)
	}
}

func TestPresets(t *testing.T) {
	if got := None(); got != NewSettings(0, SizeLevelZero, llvm.CodeGenLevelNone) {
		t.Errorf("None() = %+v", got)
	}
	if got := Cycles(); got != NewSettings(3, SizeLevelZero, llvm.CodeGenLevelAggressive) {
		t.Errorf("Cycles() = %+v", got)
	}
	if got := Size(); got != NewSettings(2, SizeLevelZ, llvm.CodeGenLevelAggressive) {
		t.Errorf("Size() = %+v", got)
	}
}

func TestPipeline(t *testing.T) {
	tests := []struct {
		settings Settings
		want     string
	}{
		{None(), "default<O0>"},
		{Cycles(), "default<O3>"},
		{Size(), "default<Oz>"},
		{NewSettings(2, SizeLevelS, llvm.CodeGenLevelAggressive), "default<Os>"},
		{NewSettings(1, SizeLevelZero, llvm.CodeGenLevelLess), "default<O1>"},
	}
	for _, test := range tests {
		if got := test.settings.Pipeline(); got != test.want {
			t.Errorf("Pipeline() = %q, want %q", got, test.want)
		}
	}
}

func TestSizeLevelString(t *testing.T) {
	tests := []struct {
		level SizeLevel
		want  string
	}{
		{SizeLevelZero, "0"},
		{SizeLevelS, "s"},
		{SizeLevelZ, "z"},
	}
	for _, test := range tests {
		if got := test.level.String(); got != test.want {
			t.Errorf("SizeLevel(%d).String() = %q, want %q", test.level, got, test.want)
		}
	}
}

func TestIsSizeFallbackAvailable(t *testing.T) {
	disabled := New(Cycles())
	if disabled.IsSizeFallbackAvailable() {
		t.Error("fallback available without the toggle")
	}

	settings := Cycles()
	settings.FallbackToSize = true
	enabled := New(settings)
	if !enabled.IsSizeFallbackAvailable() {
		t.Error("fallback unavailable despite the toggle")
	}

	settings = Size()
	settings.FallbackToSize = true
	exhausted := New(settings)
	if exhausted.IsSizeFallbackAvailable() {
		t.Error("fallback available at the strongest size level")
	}
}

func TestFallBackToSizeKeepsToggles(t *testing.T) {
	settings := Cycles()
	settings.FallbackToSize = true
	settings.SpillAreaSize = 64
	settings.MetadataSize = 32
	settings.VerifyEach = true

	o := New(settings)
	o.FallBackToSize()

	got := o.Settings()
	size := Size()
	if got.MiddleEnd != size.MiddleEnd || got.MiddleEndSize != size.MiddleEndSize || got.BackEnd != size.BackEnd {
		t.Errorf("levels after fallback = %+v, want the size preset", got)
	}
	if !got.FallbackToSize || got.SpillAreaSize != 64 || got.MetadataSize != 32 || !got.VerifyEach {
		t.Errorf("toggles lost in fallback: %+v", got)
	}
	if o.IsSizeFallbackAvailable() {
		t.Error("fallback still available after falling back")
	}
}

// passRecorder captures the pipeline handed to the pass runner.
type passRecorder struct {
	pipeline string
	err      error
}

func (r *passRecorder) RunPasses(module llvm.Module, passes string) error {
	r.pipeline = passes
	return r.err
}

func TestRun(t *testing.T) {
	recorder := &passRecorder{}
	if err := New(Cycles()).Run(recorder, llvm.Module{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if recorder.pipeline != "default<O3>" {
		t.Errorf("Run passed pipeline %q, want %q", recorder.pipeline, "default<O3>")
	}

	failure := errors.New("pass failure")
	recorder = &passRecorder{err: failure}
	if err := New(Cycles()).Run(recorder, llvm.Module{}); !errors.Is(err, failure) {
		t.Errorf("Run did not propagate the runner error: %v", err)
	}
}
