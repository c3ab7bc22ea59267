package controllers

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"hotel-api/services"
)

// bindBody decodes a JSON, multipart or urlencoded body. An empty body is not
// an error; required fields are checked by the caller.
func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil && !errors.Is(err, io.EOF) {
		return services.ValidationError{Msg: "Invalid request payload"}
	}
	return nil
}

func bindJSONBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return services.ValidationError{Msg: "Invalid request payload"}
	}
	return nil
}

// formValue drops a number gin bound from a blank form field. Form binding
// turns "" into zero, which must read as absent.
func formValue[N int | float64](c *gin.Context, key string, v *N) *N {
	if v == nil || c.ContentType() == binding.MIMEJSON {
		return v
	}
	if raw, ok := c.GetPostForm(key); ok && strings.TrimSpace(raw) == "" {
		return nil
	}
	return v
}

// text returns the trimmed value and whether it carries anything.
func text(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(*v)
	return s, s != ""
}

// putText copies a non-blank value into fields.
func putText(fields services.Fields, column string, v *string) {
	if s, ok := text(v); ok {
		fields[column] = s
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(field, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, services.ValidationError{Field: field, Msg: "must be a date (YYYY-MM-DD)"}
}

// putDate parses and copies a non-blank date into fields.
func putDate(fields services.Fields, column, field string, v *string) error {
	s, ok := text(v)
	if !ok {
		return nil
	}
	t, err := parseDate(field, s)
	if err != nil {
		return err
	}
	fields[column] = t
	return nil
}
