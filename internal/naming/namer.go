package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind tags one artifact of a module.
type Kind string

const (
	KindInterface     Kind = "interface"
	KindModel         Kind = "model"
	KindRepository    Kind = "repository"
	KindRequest       Kind = "request"
	KindController    Kind = "controller"
	KindRoutes        Kind = "routes"
	KindRouteProvider Kind = "route-provider"
	KindProvider      Kind = "provider"
)

// Kinds returns every artifact kind in build order.
func Kinds() []Kind {
	return []Kind{
		KindInterface,
		KindModel,
		KindRepository,
		KindRequest,
		KindController,
		KindRoutes,
		KindRouteProvider,
		KindProvider,
	}
}

// Identifier is a fully-qualified artifact identifier such as
// App\Blog\Repository\BlogInterface.
type Identifier string

// String returns the identifier.
func (id Identifier) String() string { return string(id) }

// Namespace returns every segment but the last.
func (id Identifier) Namespace() string {
	s := string(id)
	if i := strings.LastIndex(s, Separator); i >= 0 {
		return strings.Trim(s[:i], Separator)
	}
	return ""
}

// Simple returns the last segment.
func (id Identifier) Simple() string { return lastSegment(string(id)) }

// Segments returns the namespace segments of the identifier.
func (id Identifier) Segments() []string { return strings.Split(string(id), Separator) }

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// Namer derives the artifact identifiers of one module. It holds no state
// beyond the module name, so every call with the same module yields the same
// identifiers.
type Namer struct {
	module ModuleName
}

// NewNamer returns a Namer for m.
func NewNamer(m ModuleName) Namer {
	return Namer{module: m}
}

// Module returns the module the namer derives from.
func (n Namer) Module() ModuleName { return n.module }

// FileName returns the last module segment with its first letter upper-cased.
func (n Namer) FileName() string {
	return UpperFirst(n.module.Last())
}

// Identifier returns the identifier of the artifact of the given kind. Unknown
// kinds yield an empty identifier.
func (n Namer) Identifier(kind Kind) Identifier {
	m := n.module.String()
	f := n.FileName()

	switch kind {
	case KindInterface:
		return join(m, "Repository", f+"Interface")
	case KindModel:
		return join(m, "Model", f)
	case KindRepository:
		return join(m, "Repository", f+"Repository")
	case KindRequest:
		return join(m, "Http", "Requests", f+"Request")
	case KindController:
		return join(m, "Http", "Controllers", f+"Controller")
	case KindRoutes:
		return join(m, "Http", "routes")
	case KindRouteProvider:
		return join(m, "Providers", "RouteServiceProvider")
	case KindProvider:
		return join(m, "Providers", f+"ServiceProvider")
	default:
		return ""
	}
}

// All returns the identifiers of every artifact in build order.
func (n Namer) All() []Identifier {
	kinds := Kinds()
	ids := make([]Identifier, 0, len(kinds))
	for _, kind := range kinds {
		ids = append(ids, n.Identifier(kind))
	}
	return ids
}

// PluralSegment returns the lower-cased plural of the last segment of the raw
// input name. It names route paths, view folders and the migration table.
func (n Namer) PluralSegment() string {
	return Plural(lastSegment(n.module.Input()))
}

// Plural lower-cases the English plural of word using the inflection rule set
// (regular suffixes, irregulars such as person/people, uncountables such as
// sheep).
func Plural(word string) string {
	return lower.String(inflection.Plural(word))
}

// UpperFirst upper-cases the first rune of s and leaves the rest untouched.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return upper.String(string(r)) + s[size:]
}

func join(parts ...string) Identifier {
	return Identifier(strings.Join(parts, Separator))
}
