package tasks

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeImage_ResizesOversized(t *testing.T) {
	data := encodePNG(t, 400, 200)

	processed, contentType, changed, err := NormalizeImage(data, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "image/jpeg", contentType)

	img, format, err := image.Decode(bytes.NewReader(processed))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), 100)
	assert.LessOrEqual(t, img.Bounds().Dy(), 100)
	// Aspect ratio is preserved, so the short side shrinks proportionally.
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestNormalizeImage_LeavesSmallImagesAlone(t *testing.T) {
	data := encodePNG(t, 80, 60)

	processed, contentType, changed, err := NormalizeImage(data, 100)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, data, processed)
}

func TestNormalizeImage_RejectsGarbage(t *testing.T) {
	_, _, _, err := NormalizeImage([]byte("not an image"), 100)
	assert.Error(t, err)
}

func TestNewImageProcessTask(t *testing.T) {
	task, err := NewImageProcessTask("crops/farmer@example.com/abc_photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, TypeImageProcess, task.Type())

	var payload ImageTaskPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "crops/farmer@example.com/abc_photo.jpg", payload.S3Key)
}
