package ir

import "fmt"

// Attribute is an LLVM enum function attribute accepted from front-end
// annotations, carrying the LLVM kind name.
type Attribute string

const (
	AttributeAlwaysInline    Attribute = "alwaysinline"
	AttributeCold            Attribute = "cold"
	AttributeHot             Attribute = "hot"
	AttributeMinSize         Attribute = "minsize"
	AttributeOptimizeForSize Attribute = "optsize"
	AttributeNoInline        Attribute = "noinline"
	AttributeWillReturn      Attribute = "willreturn"
	AttributeNoReturn        Attribute = "noreturn"
	AttributeMustProgress    Attribute = "mustprogress"
)

// attributeNames maps the spelling used in source annotations to the LLVM
// attribute kind.
var attributeNames = map[string]Attribute{
	"AlwaysInline":    AttributeAlwaysInline,
	"Cold":            AttributeCold,
	"Hot":             AttributeHot,
	"MinSize":         AttributeMinSize,
	"OptimizeForSize": AttributeOptimizeForSize,
	"NoInline":        AttributeNoInline,
	"WillReturn":      AttributeWillReturn,
	"NoReturn":        AttributeNoReturn,
	"MustProgress":    AttributeMustProgress,
}

// ParseAttribute maps a source annotation to its LLVM attribute. Unknown
// names are malformed input, reported with the offending name.
func ParseAttribute(name string) (Attribute, error) {
	attribute, ok := attributeNames[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownAttribute, name)
	}
	return attribute, nil
}
