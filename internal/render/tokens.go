package render

import (
	"sort"

	"github.com/conneroisu/modforge/internal/naming"
)

// Token is a literal placeholder spelled inside a stub. The spellings are a
// compatibility surface for published stubs and must not change.
type Token string

const (
	TokenNamespace                     Token = "DummyNamespace"
	TokenRootNamespace                 Token = "DummyRootNamespace"
	TokenClass                         Token = "DummyClass"
	TokenInterfaceNamespace            Token = "DummyInterfaceNamespace"
	TokenInterface                     Token = "DummyInterface"
	TokenModelNamespace                Token = "DummyModelNamespace"
	TokenModel                         Token = "DummyModel"
	TokenRequestNamespace              Token = "DummyRequestNamespace"
	TokenRequest                       Token = "DummyRequest"
	TokenRepositoryNamespace           Token = "DummyRepositoryNamespace"
	TokenControllerNamespace           Token = "DummyControllerNamespace"
	TokenControllerFolders             Token = "DummyControllerFolders"
	TokenRouteServiceProviderNamespace Token = "DummyRouteServiceProviderNamespace"
	TokenRoutes                        Token = "dummyroutes"
	TokenView                          Token = "dummyview"
)

// Tokens maps each placeholder to its resolved value.
type Tokens map[Token]string

// Names returns the token spellings sorted alphabetically.
func (t Tokens) Names() []string {
	names := make([]string, 0, len(t))
	for token := range t {
		names = append(names, string(token))
	}
	sort.Strings(names)
	return names
}

// Has reports whether token is declared in t.
func (t Tokens) Has(token string) bool {
	_, ok := t[Token(token)]
	return ok
}

// Category groups the tokens one cross-reference contributes.
type Category string

const (
	CategoryNamespace         Category = "namespace"
	CategoryClass             Category = "class"
	CategoryInterface         Category = "interface"
	CategoryModel             Category = "model"
	CategoryRequest           Category = "request"
	CategoryController        Category = "controller"
	CategoryControllerFolders Category = "controller-folders"
	CategoryViewFolders       Category = "view-folders"
	CategoryBindings          Category = "bindings"
	CategoryRouteProvider     Category = "route-provider"
)

var categoryTokens = map[Category][]Token{
	CategoryNamespace:         {TokenNamespace, TokenRootNamespace},
	CategoryClass:             {TokenClass},
	CategoryInterface:         {TokenInterfaceNamespace, TokenInterface},
	CategoryModel:             {TokenModelNamespace, TokenModel},
	CategoryRequest:           {TokenRequestNamespace, TokenRequest},
	CategoryController:        {TokenRoutes, TokenControllerNamespace},
	CategoryControllerFolders: {TokenControllerFolders},
	CategoryViewFolders:       {TokenView},
	CategoryBindings:          {TokenInterfaceNamespace, TokenRepositoryNamespace},
	CategoryRouteProvider:     {TokenRouteServiceProviderNamespace},
}

var kindCategories = map[naming.Kind][]Category{
	naming.KindInterface:     {CategoryNamespace, CategoryClass},
	naming.KindModel:         {CategoryNamespace, CategoryClass},
	naming.KindRepository:    {CategoryNamespace, CategoryClass, CategoryInterface, CategoryModel},
	naming.KindRequest:       {CategoryNamespace, CategoryClass},
	naming.KindController:    {CategoryNamespace, CategoryClass, CategoryRequest, CategoryViewFolders, CategoryInterface},
	naming.KindRoutes:        {CategoryController},
	naming.KindRouteProvider: {CategoryNamespace, CategoryControllerFolders},
	naming.KindProvider:      {CategoryNamespace, CategoryClass, CategoryBindings, CategoryRouteProvider},
}

// Categories returns the token categories an artifact kind resolves.
func Categories(kind naming.Kind) []Category {
	return append([]Category(nil), kindCategories[kind]...)
}

// Declared returns the tokens an artifact kind's stub may use, sorted.
func Declared(kind naming.Kind) []Token {
	seen := make(map[Token]bool)
	var tokens []Token
	for _, category := range kindCategories[kind] {
		for _, token := range categoryTokens[category] {
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}

// TokensFor builds the token table of kind for the module behind n. Only the
// tokens of the kind's categories are present.
func TokensFor(kind naming.Kind, n naming.Namer) Tokens {
	target := n.Identifier(kind)
	iface := n.Identifier(naming.KindInterface)
	model := n.Identifier(naming.KindModel)
	request := n.Identifier(naming.KindRequest)
	repository := n.Identifier(naming.KindRepository)
	controller := n.Identifier(naming.KindController)
	routeProvider := n.Identifier(naming.KindRouteProvider)
	plural := n.PluralSegment()

	values := map[Token]string{
		TokenNamespace:                     target.Namespace(),
		TokenRootNamespace:                 n.Module().Root(),
		TokenClass:                         target.Simple(),
		TokenInterfaceNamespace:            iface.String(),
		TokenInterface:                     iface.Simple(),
		TokenModelNamespace:                model.String(),
		TokenModel:                         model.Simple(),
		TokenRequestNamespace:              request.String(),
		TokenRequest:                       request.Simple(),
		TokenRepositoryNamespace:           repository.String(),
		TokenControllerNamespace:           controller.Simple(),
		TokenControllerFolders:             controller.Namespace(),
		TokenRouteServiceProviderNamespace: routeProvider.String(),
		TokenRoutes:                        plural,
		TokenView:                          plural,
	}

	tokens := make(Tokens)
	for _, token := range Declared(kind) {
		tokens[token] = values[token]
	}
	return tokens
}
