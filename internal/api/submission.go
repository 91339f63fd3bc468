package api

import (
	"bytes"
	"mime/multipart"

	"github.com/ecofinds/marketplace-client/internal/models"
)

// Submission is a structured multipart form: an ordered list of scalar
// fields plus binary attachments. Field order is preserved on the wire.
type Submission struct {
	fields []field
	files  []filePart
}

type field struct {
	name  string
	value string
}

type filePart struct {
	name     string
	filename string
	content  []byte
}

func NewSubmission() *Submission {
	return &Submission{}
}

func (s *Submission) AddField(name, value string) *Submission {
	s.fields = append(s.fields, field{name: name, value: value})

	return s
}

func (s *Submission) AddImage(img models.ImageUpload) *Submission {
	s.files = append(s.files, filePart{name: "images", filename: img.Filename, content: img.Content})

	return s
}

func (s *Submission) AddImages(imgs []models.ImageUpload) *Submission {
	for _, img := range imgs {
		s.AddImage(img)
	}

	return s
}

// Encode renders the form body and returns it with its content type.
func (s *Submission) Encode() ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, f := range s.fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for _, fp := range s.files {
		part, err := writer.CreateFormFile(fp.name, fp.filename)
		if err != nil {
			return nil, "", err
		}

		if _, err := part.Write(fp.content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
