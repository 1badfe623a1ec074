package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sort"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
)

// Body is an outbound request payload
type Body interface {
	ContentType() string
	Reader() (io.Reader, error)
}

type jsonBody struct {
	value any
}

// JSON encodes v as the request body
func JSON(v any) Body {
	return jsonBody{value: v}
}

func (jsonBody) ContentType() string {
	return "application/json"
}

func (b jsonBody) Reader() (io.Reader, error) {
	payload, err := json.Marshal(b.value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(payload), nil
}

// File is one file part of a multipart body
type File struct {
	Field    string
	Filename string
	Content  io.Reader
}

type multipartBody struct {
	boundary string
	data     []byte
	err      error
}

// Multipart builds a multipart/form-data body from plain fields and files.
// Files are read once, here; the returned Body can be sent any number of times.
func Multipart(fields map[string]string, files ...File) Body {
	b := &multipartBody{}
	b.err = b.build(fields, files)
	return b
}

func (b *multipartBody) ContentType() string {
	if b.err != nil {
		return "multipart/form-data"
	}
	return "multipart/form-data; boundary=" + b.boundary
}

func (b *multipartBody) Reader() (io.Reader, error) {
	if b.err != nil {
		return nil, b.err
	}
	return bytes.NewReader(b.data), nil
}

func (b *multipartBody) build(fields map[string]string, files []File) error {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteField(name, fields[name]); err != nil {
			return fmt.Errorf("writing field %s: %w", name, err)
		}
	}

	for _, f := range files {
		if f.Content == nil {
			return apperrors.Wrapf(apperrors.ErrUnsupported, "file %s has no content", f.Field)
		}
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return fmt.Errorf("creating file part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("copying file %s: %w", f.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	b.boundary = w.Boundary()
	b.data = buf.Bytes()
	return nil
}

type rawBody struct {
	contentType string
	data        []byte
}

// Raw sends data as-is with the given content type
func Raw(contentType string, data []byte) Body {
	return rawBody{contentType: contentType, data: data}
}

func (b rawBody) ContentType() string {
	return b.contentType
}

func (b rawBody) Reader() (io.Reader, error) {
	return bytes.NewReader(b.data), nil
}
