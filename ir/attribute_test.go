package ir

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name string
		want Attribute
	}{
		{"AlwaysInline", AttributeAlwaysInline},
		{"Cold", AttributeCold},
		{"Hot", AttributeHot},
		{"MinSize", AttributeMinSize},
		{"OptimizeForSize", AttributeOptimizeForSize},
		{"NoInline", AttributeNoInline},
		{"WillReturn", AttributeWillReturn},
		{"NoReturn", AttributeNoReturn},
		{"MustProgress", AttributeMustProgress},
	}
	for _, test := range tests {
		got, err := ParseAttribute(test.name)
		if err != nil {
			t.Errorf("ParseAttribute(%q): %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseAttribute(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestParseAttributeUnknown(t *testing.T) {
	_, err := ParseAttribute("Sparkly")
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("ParseAttribute of an unknown name should report ErrUnknownAttribute, got %v", err)
	}
	if !strings.Contains(err.Error(), `"Sparkly"`) {
		t.Errorf("error %q should carry the offending name", err)
	}
	if IsInternal(err) {
		t.Error("an unknown attribute is malformed input, not an internal fault")
	}

	// The parser matches the annotation spelling, not the LLVM kind name.
	if _, err := ParseAttribute("alwaysinline"); err == nil {
		t.Error("lowercase LLVM kind names are not valid annotations")
	}
}
