package api

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionEncode(t *testing.T) {
	sub := NewSubmission().
		AddField("title", "Bamboo Desk Organizer").
		AddField("price", "12.50").
		AddImages([]models.ImageUpload{
			{Filename: "front.png", Content: []byte("png-bytes")},
			{Filename: "side.jpg", Content: []byte("jpg-bytes")},
		})

	body, contentType, err := sub.Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()

	assert.Equal(t, []string{"Bamboo Desk Organizer"}, form.Value["title"])
	assert.Equal(t, []string{"12.50"}, form.Value["price"])

	files := form.File["images"]
	require.Len(t, files, 2)
	assert.Equal(t, "front.png", files[0].Filename)
	assert.Equal(t, "side.jpg", files[1].Filename)

	f, err := files[1].Open()
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpg-bytes"), content)
}
