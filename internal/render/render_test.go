package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/conneroisu/modforge/internal/errors"
	"github.com/conneroisu/modforge/internal/naming"
	"github.com/conneroisu/modforge/internal/stubs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() *Renderer {
	return New(stubs.NewLoader(afero.NewMemMapFs(), ""))
}

func TestRenderLeavesNoPlaceholders(t *testing.T) {
	renderer := newTestRenderer()

	for _, raw := range []string{"Blog", "Category", "Shop/Order"} {
		n := naming.NewNamer(naming.MustResolve(raw, "App"))
		for _, kind := range naming.Kinds() {
			t.Run(fmt.Sprintf("%s/%s", raw, kind), func(t *testing.T) {
				content, err := renderer.RenderKind(kind, n)
				require.NoError(t, err)

				assert.Empty(t, Placeholders(content))
				for _, token := range Declared(kind) {
					assert.NotContains(t, content, string(token))
				}
			})
		}
	}
}

func TestRenderCrossReferences(t *testing.T) {
	renderer := newTestRenderer()
	n := naming.NewNamer(naming.MustResolve("Blog", "App"))

	render := func(kind naming.Kind) string {
		content, err := renderer.RenderKind(kind, n)
		require.NoError(t, err)
		return content
	}

	iface := n.Identifier(naming.KindInterface)
	model := n.Identifier(naming.KindModel)
	request := n.Identifier(naming.KindRequest)
	repository := n.Identifier(naming.KindRepository)
	routeProvider := n.Identifier(naming.KindRouteProvider)

	t.Run("interface", func(t *testing.T) {
		content := render(naming.KindInterface)
		assert.Contains(t, content, `namespace App\Blog\Repository;`)
		assert.Contains(t, content, "interface BlogInterface")
	})

	t.Run("model", func(t *testing.T) {
		content := render(naming.KindModel)
		assert.Contains(t, content, `namespace App\Blog\Model;`)
		assert.Contains(t, content, "class Blog extends Model")
	})

	t.Run("repository", func(t *testing.T) {
		content := render(naming.KindRepository)
		assert.Contains(t, content, "use "+iface.String()+";")
		assert.Contains(t, content, "use "+model.String()+";")
		assert.Contains(t, content, "class BlogRepository implements "+iface.Simple())
		assert.Contains(t, content, "__construct("+model.Simple()+" $model)")
	})

	t.Run("request", func(t *testing.T) {
		content := render(naming.KindRequest)
		assert.Contains(t, content, `namespace App\Blog\Http\Requests;`)
		assert.Contains(t, content, `use App\Http\Requests\Request;`)
		assert.Contains(t, content, "class BlogRequest extends Request")
	})

	t.Run("controller", func(t *testing.T) {
		content := render(naming.KindController)
		assert.Contains(t, content, "use "+request.String()+";")
		assert.Contains(t, content, "use "+iface.String()+";")
		assert.Contains(t, content, `use App\Http\Controllers\Controller;`)
		assert.Contains(t, content, "store("+request.Simple()+" $request)")
		assert.Contains(t, content, "__construct("+iface.Simple()+" $repository)")
		assert.Contains(t, content, "view('blogs.index'")
	})

	t.Run("routes", func(t *testing.T) {
		content := render(naming.KindRoutes)
		assert.Contains(t, content, "Route::resource('blogs', 'BlogController');")
	})

	t.Run("route provider", func(t *testing.T) {
		content := render(naming.KindRouteProvider)
		assert.Contains(t, content, `namespace App\Blog\Providers;`)
		assert.Contains(t, content, `protected $namespace = 'App\Blog\Http\Controllers';`)
	})

	t.Run("provider", func(t *testing.T) {
		content := render(naming.KindProvider)
		assert.Contains(t, content, "class BlogServiceProvider extends ServiceProvider")
		assert.Contains(t, content, `\`+routeProvider.String()+"::class")
		assert.Contains(t, content, `\`+iface.String()+"::class")
		assert.Contains(t, content, `\`+repository.String()+"::class")
	})
}

func TestSubstituteLongestTokenFirst(t *testing.T) {
	tokens := Tokens{
		TokenInterface:          "BlogInterface",
		TokenInterfaceNamespace: `App\Blog\Repository\BlogInterface`,
	}

	content := Substitute("use DummyInterfaceNamespace; implements DummyInterface", tokens)

	assert.Equal(t, `use App\Blog\Repository\BlogInterface; implements BlogInterface`, content)
	assert.NotContains(t, content, "BlogInterfaceNamespace")
}

func TestSubstituteIsOrderIndependent(t *testing.T) {
	n := naming.NewNamer(naming.MustResolve("Blog", "App"))
	stub, err := stubs.Embedded(naming.KindController)
	require.NoError(t, err)

	full := TokensFor(naming.KindController, n)
	expected := Substitute(stub, full)

	// Rebuild the table many times; map iteration order differs between builds.
	for i := 0; i < 20; i++ {
		rebuilt := make(Tokens)
		for _, name := range full.Names() {
			rebuilt[Token(name)] = full[Token(name)]
		}
		assert.Equal(t, expected, Substitute(stub, rebuilt))
	}
}

func TestSubstituteDoesNotRescanValues(t *testing.T) {
	tokens := Tokens{TokenClass: "DummyNamespace", TokenNamespace: "X"}

	assert.Equal(t, "DummyNamespace X", Substitute("DummyClass DummyNamespace", tokens))
}

func TestRenderRejectsUndeclaredPlaceholders(t *testing.T) {
	n := naming.NewNamer(naming.MustResolve("Blog", "App"))

	_, err := Render(naming.KindModel, "class DummyClass uses DummyInterface", TokensFor(naming.KindModel, n))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnresolvedPlaceholder)
	assert.Contains(t, err.Error(), "DummyInterface")
}

func TestRenderRejectsPlaceholderValues(t *testing.T) {
	_, err := Render(naming.KindModel, "class DummyClass", Tokens{TokenClass: "dummything"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnresolvedPlaceholder)
}

type failingLoader struct{}

func (failingLoader) Load(kind naming.Kind) (string, error) {
	return "", fmt.Errorf("stub %s missing", kind)
}

func TestRenderKindStubReadFailure(t *testing.T) {
	renderer := New(failingLoader{})
	n := naming.NewNamer(naming.MustResolve("Blog", "App"))

	_, err := renderer.RenderKind(naming.KindModel, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrStubReadFailure)
	assert.Contains(t, err.Error(), "model.stub")
}

func TestDeclaredTokens(t *testing.T) {
	tests := []struct {
		kind     naming.Kind
		expected []Token
	}{
		{naming.KindModel, []Token{TokenClass, TokenNamespace, TokenRootNamespace}},
		{naming.KindRoutes, []Token{TokenControllerNamespace, TokenRoutes}},
		{naming.KindRouteProvider, []Token{TokenControllerFolders, TokenNamespace, TokenRootNamespace}},
		{naming.KindProvider, []Token{
			TokenClass, TokenInterfaceNamespace, TokenNamespace,
			TokenRepositoryNamespace, TokenRootNamespace, TokenRouteServiceProviderNamespace,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, Declared(tt.kind))
		})
	}
}

func TestEmbeddedStubsUseOnlyDeclaredTokens(t *testing.T) {
	for _, kind := range naming.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			stub, err := stubs.Embedded(kind)
			require.NoError(t, err)

			declared := make(map[string]bool)
			for _, token := range Declared(kind) {
				declared[string(token)] = true
			}
			for _, placeholder := range Placeholders(stub) {
				assert.True(t, declared[placeholder], "undeclared placeholder %s", placeholder)
			}
			assert.NotEmpty(t, Placeholders(stub))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	found := Placeholders("a DummyClass b \\DummyNamespace::class dummyroutes.index DummyClass")
	assert.Equal(t, []string{"DummyClass", "DummyNamespace", "dummyroutes"}, found)
	assert.Empty(t, Placeholders(strings.Repeat("App\\Blog ", 3)))
}
