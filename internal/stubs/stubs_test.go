package stubs

import (
	"path/filepath"
	"testing"

	"github.com/conneroisu/modforge/internal/naming"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindHasEmbeddedStub(t *testing.T) {
	for _, kind := range naming.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			content, err := Embedded(kind)
			require.NoError(t, err)
			assert.NotEmpty(t, content)
			assert.Contains(t, content, "<?php")
		})
	}

	names, err := Names()
	require.NoError(t, err)
	assert.Len(t, names, len(naming.Kinds()))
}

func TestLoaderUnknownKind(t *testing.T) {
	loader := NewLoader(afero.NewMemMapFs(), "")

	_, err := loader.Load(naming.Kind("widget"))
	assert.Error(t, err)
	assert.Equal(t, "", FileName(naming.Kind("widget")))
}

func TestLoaderPrefersOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/project/stubs"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "model.stub"), []byte("custom DummyClass"), 0644))

	loader := NewLoader(fs, dir)

	model, err := loader.Load(naming.KindModel)
	require.NoError(t, err)
	assert.Equal(t, "custom DummyClass", model)
	assert.Equal(t, filepath.Join(dir, "model.stub"), loader.Source(naming.KindModel))

	embeddedInterface, err := Embedded(naming.KindInterface)
	require.NoError(t, err)

	iface, err := loader.Load(naming.KindInterface)
	require.NoError(t, err)
	assert.Equal(t, embeddedInterface, iface)
	assert.Equal(t, "embedded:interface.stub", loader.Source(naming.KindInterface))
}

func TestPublish(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/project/stubs"

	written, err := Publish(fs, dir, false)
	require.NoError(t, err)
	assert.Len(t, written, len(naming.Kinds()))

	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "routes.stub"), []byte("edited"), 0644))

	written, err = Publish(fs, dir, false)
	require.NoError(t, err)
	assert.Empty(t, written)

	data, err := afero.ReadFile(fs, filepath.Join(dir, "routes.stub"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))

	written, err = Publish(fs, dir, true)
	require.NoError(t, err)
	assert.Len(t, written, len(naming.Kinds()))

	data, err = afero.ReadFile(fs, filepath.Join(dir, "routes.stub"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Route::resource")
}
