// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	formDecoder = form.NewDecoder()
	validate    = validator.New(validator.WithRequiredStructEnabled())
)

func init() {
	formDecoder.SetTagName("json")
}

// Decode reads a JSON body or an urlencoded/multipart form into dst. Form
// fields use the same names as the JSON tags.
func Decode(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil {
			return FieldError("body", "invalid JSON")
		}
		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return FieldError("body", "invalid form")
		}
	default:
		if err := r.ParseForm(); err != nil {
			return FieldError("body", "invalid form")
		}
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return FieldError("body", "invalid form")
	}
	return nil
}

// DecodeValid decodes and then validates dst against its struct tags.
func DecodeValid(r *http.Request, dst any) error {
	if err := Decode(r, dst); err != nil {
		return err
	}
	return Validate(dst)
}

func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return ValidationError(ValidationFields(err))
	}
	return nil
}

// PageFromRequest reads the 1-based "page" and optional "page_size" query
// parameters. Garbage falls back to the defaults.
func PageFromRequest(r *http.Request) PageRequest {
	q := r.URL.Query()
	return NewPageRequest(atoiOr(q.Get("page"), 1), atoiOr(q.Get("page_size"), DefaultPageSize))
}

// IDParam parses a numeric chi URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q: %w", name, raw, ErrNotFound)
	}
	return id, nil
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// WantsJSON reports whether the client asked for a JSON answer instead of a
// redirect.
func WantsJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Accept"))
	return mediaType == "application/json"
}
