package fontregistry

import (
	"os"
	"testing"

	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestAcquireRelease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	fr := NewRegistry(t.TempDir())
	res, err := fr.Acquire("OriginalFont", goregular.TTF)
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
	assert.Equal(t, []string{"OriginalFont"}, fr.Live())
	found, ok := fr.Lookup("OriginalFont")
	require.True(t, ok)
	assert.Same(t, res, found)
	fr.Release("OriginalFont")
	assert.Empty(t, fr.Live())
	_, err = os.Stat(res.Path)
	assert.True(t, os.IsNotExist(err), "temporary font file should be removed")
	fr.Release("OriginalFont") // releasing twice is harmless
}

func TestAcquireReplacesResource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	fr := NewRegistry(t.TempDir())
	first, err := fr.Acquire("EditingFont", goregular.TTF)
	require.NoError(t, err)
	second, err := fr.Acquire("EditingFont", gobold.TTF)
	require.NoError(t, err)
	assert.NotEqual(t, first.Path, second.Path)
	_, err = os.Stat(first.Path)
	assert.True(t, os.IsNotExist(err), "previous resource should be released")
	assert.Len(t, fr.Live(), 1)
}

func TestAcquireFailureReleasesPrevious(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	fr := NewRegistry(t.TempDir())
	first, err := fr.Acquire("EditingFont", goregular.TTF)
	require.NoError(t, err)
	_, err = fr.Acquire("EditingFont", []byte("garbage"))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, ok := fr.Lookup("EditingFont")
	assert.False(t, ok)
	_, err = os.Stat(first.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestFaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpad.fonts")
	defer teardown()
	//
	fr := NewRegistry(t.TempDir())
	_, err := fr.Acquire("OriginalFont", goregular.TTF)
	require.NoError(t, err)
	face, err := fr.Face("OriginalFont", 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, face.Size())
	again, _ := fr.Face("OriginalFont", 60)
	assert.Same(t, face.Source(), again.Source())
	//
	fallback, err := fr.Face("unknown", 12)
	assert.Equal(t, core.EMISSING, core.Code(err))
	require.NotNil(t, fallback)
	assert.True(t, fallback.HasGlyph('A'))
	fr.LogFontList()
	fr.ReleaseAll()
	assert.Empty(t, fr.Live())
}
