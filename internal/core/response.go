// AngelaMos | 2026
// response.go

package core

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const flashCookieName = "console_flash"

type Response struct {
	Success bool            `json:"success"`
	Data    any             `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Flash   *Flash          `json:"flash,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Flash is a one-shot status message carried across a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// View writes a page payload together with any pending flash message.
func View(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Flash:   ConsumeFlash(w, r),
	})
}

func Paginated[T any](w http.ResponseWriter, r *http.Request, page Page[T]) {
	meta := page.Meta()
	JSON(w, http.StatusOK, Response{
		Success: true,
		Data:    page.Items,
		Meta:    &meta,
		Flash:   ConsumeFlash(w, r),
	})
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewAppError(err, http.StatusText(StatusFor(err)), StatusFor(err), "ERROR")
	}

	JSON(w, appErr.StatusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		},
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSONError(w, NewAppError(
		err,
		"internal server error",
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
	))
}

// Fail renders err with a localized message. Failures outside the client
// taxonomy are logged with detail and shown generically.
func Fail(w http.ResponseWriter, msgs *Messages, err error) {
	status := StatusFor(err)
	if !IsClientError(err) {
		slog.Error("request failed", "error", err, "status", status)
	}

	body := &ErrorBody{
		Code:    http.StatusText(status),
		Message: msgs.ForError(err),
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code != "" {
			body.Code = appErr.Code
		}
		body.Fields = appErr.Fields
	}

	JSON(w, status, Response{Success: false, Error: body})
}

// Redirect sends a 303 to location and leaves a flash message for the next
// view rendered for this client.
func Redirect(
	w http.ResponseWriter,
	r *http.Request,
	location, kind, message string,
) {
	if message != "" {
		SetFlash(w, Flash{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func SetFlash(w http.ResponseWriter, f Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// ConsumeFlash returns the pending flash message, if any, and clears it.
func ConsumeFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

// Finish ends a mutation. JSON callers get data or the error; browser callers
// are sent back to location with a flash message either way.
func Finish(
	w http.ResponseWriter,
	r *http.Request,
	msgs *Messages,
	location string,
	data any,
	err error,
	success MessageID,
) {
	if WantsJSON(r) {
		if err != nil {
			Fail(w, msgs, err)
			return
		}
		OK(w, data)
		return
	}

	if err != nil {
		if !IsClientError(err) {
			slog.ErrorContext(r.Context(), "mutation failed",
				"path", r.URL.Path,
				"error", err,
			)
		}
		Redirect(w, r, location, FlashError, msgs.ForError(err))
		return
	}
	Redirect(w, r, location, FlashSuccess, msgs.Get(success))
}
