// Package naming turns a raw module name into its canonical namespace path and
// derives every artifact identifier of a module from it.
//
// Identifiers use the backslash as the namespace separator (App\Blog\Model\Blog).
// A forward slash in user input is accepted as an alias for it.
package naming

import (
	"strings"
	"unicode"

	"github.com/conneroisu/modforge/internal/errors"
)

const (
	// Separator joins namespace segments.
	Separator = `\`

	// PathSeparator is accepted in raw input in place of Separator.
	PathSeparator = "/"

	// maxResolvePasses bounds the normalization loop. A name either carries
	// the root prefix already or gains it in the first pass.
	maxResolvePasses = 2
)

// reservedPrefixes cannot start a name segment; they would be read back as
// unresolved placeholders in rendered stubs.
var reservedPrefixes = []string{"Dummy", "dummy"}

// ModuleName is the canonical, root-qualified identifier of a module, such as
// App\Blog. The zero value is not valid; use Resolve.
type ModuleName struct {
	value string
	input string
	root  string
}

// String returns the canonical identifier.
func (m ModuleName) String() string { return m.value }

// Input returns the raw name the module was resolved from, trimmed.
func (m ModuleName) Input() string { return m.input }

// Root returns the root namespace the module was resolved under.
func (m ModuleName) Root() string { return m.root }

// Segments returns the namespace segments of the module.
func (m ModuleName) Segments() []string { return strings.Split(m.value, Separator) }

// Last returns the last segment of the module name.
func (m ModuleName) Last() string { return lastSegment(m.value) }

// Identifier returns the module name as an Identifier.
func (m ModuleName) Identifier() Identifier { return Identifier(m.value) }

// IsZero reports whether m was not produced by Resolve.
func (m ModuleName) IsZero() bool { return m.value == "" }

// Resolve normalizes raw into a ModuleName rooted at root. Names already
// carrying the root prefix are returned unchanged apart from separator
// normalization, so resolving a resolved name is a no-op.
func Resolve(raw, root string) (ModuleName, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return ModuleName{}, errors.NewInvalidNameError(raw, "name is empty")
	}

	rootNS := normalize(strings.TrimSpace(root))
	if rootNS == "" {
		return ModuleName{}, errors.NewInvalidNameError(root, "root namespace is empty")
	}
	if err := validateSegments(root, rootNS); err != nil {
		return ModuleName{}, err
	}

	prefix := rootNS + Separator
	name := normalize(input)

	for pass := 0; pass < maxResolvePasses; pass++ {
		if strings.HasPrefix(name, prefix) {
			if err := validateSegments(raw, name); err != nil {
				return ModuleName{}, err
			}
			return ModuleName{value: name, input: input, root: rootNS}, nil
		}
		name = prefix + name
	}

	return ModuleName{}, errors.NewInternalError("module name did not converge: "+name, nil)
}

// MustResolve is like Resolve but panics on error. Intended for tests and
// constant inputs.
func MustResolve(raw, root string) ModuleName {
	m, err := Resolve(raw, root)
	if err != nil {
		panic(err)
	}
	return m
}

// normalize converts path separators to namespace separators and strips
// leading and trailing separators.
func normalize(name string) string {
	name = strings.ReplaceAll(name, PathSeparator, Separator)
	return strings.Trim(name, Separator)
}

func validateSegments(raw, name string) error {
	for _, segment := range strings.Split(name, Separator) {
		if segment == "" {
			return errors.NewInvalidNameError(raw, "empty namespace segment")
		}
		if !isIdentifier(segment) {
			return errors.NewInvalidNameError(raw, "segment "+segment+" is not a valid identifier")
		}
		for _, prefix := range reservedPrefixes {
			if strings.HasPrefix(segment, prefix) {
				return errors.NewInvalidNameError(raw, "segment "+segment+" uses the reserved placeholder prefix "+prefix)
			}
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

func lastSegment(name string) string {
	name = normalize(name)
	if i := strings.LastIndex(name, Separator); i >= 0 {
		return name[i+1:]
	}
	return name
}
