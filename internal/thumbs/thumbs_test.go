package thumbs

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholder_MatchesRequestedSize(t *testing.T) {
	data, err := Placeholder(120, 168)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 168, img.Bounds().Dy())
}

func TestPlaceholder_DegenerateSizeStillRenders(t *testing.T) {
	data, err := Placeholder(0, -5)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestIsDecodable(t *testing.T) {
	data, err := Placeholder(10, 10)
	require.NoError(t, err)

	assert.True(t, IsDecodable(data))
	assert.False(t, IsDecodable(nil))
	assert.False(t, IsDecodable([]byte("not a png")))
}

func TestEnsure_KeepsValidBytes(t *testing.T) {
	data, err := Placeholder(10, 10)
	require.NoError(t, err)

	got, err := Ensure(data, 99, 99)
	require.NoError(t, err)
	assert.Equal(t, data, got, "valid thumbnail bytes must pass through untouched")
}

func TestEnsure_ReplacesCorruptBytes(t *testing.T) {
	got, err := Ensure([]byte("garbage"), 20, 30)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(got))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}
