package controllers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/middleware"
	"hotel-api/services"
	"hotel-api/utils"
)

// Renderer writes a success body for a single record.
type Renderer[T any] func(c *gin.Context, code int, rec T)

// Bare renders the record itself.
func Bare[T any]() Renderer[T] {
	return func(c *gin.Context, code int, rec T) {
		c.JSON(code, rec)
	}
}

// Wrapped renders {"success": true, key: record}.
func Wrapped[T any](key string) Renderer[T] {
	return func(c *gin.Context, code int, rec T) {
		utils.JSONSuccess(c, code, key, rec)
	}
}

// WithMessage renders {"message": msg, key: record}.
func WithMessage[T any](msg, key string) Renderer[T] {
	return func(c *gin.Context, code int, rec T) {
		utils.JSONMessage(c, code, msg, gin.H{key: rec})
	}
}

// Envelopes is the per-resource response contract. Resources differ here and
// clients depend on the differences.
type Envelopes[T any] struct {
	One     Renderer[T]
	Created Renderer[T]
	Updated Renderer[T]
	Deleted string
}

// ImageRule describes an attached image accepted as a multipart file.
type ImageRule[T any] struct {
	FormField string
	Column    string
	Required  bool
	Missing   string
	Set       func(rec *T, url string)
}

// UniqueRule names a column no two records may share.
type UniqueRule[T any] struct {
	Column  string
	Value   func(rec T) any
	Message string
}

// Resource is the list/get/create/update/delete engine shared by every
// resource router. Decode and Patch validate the body before anything with a
// side effect runs.
type Resource[T services.Record] struct {
	Name     string
	Store    services.Collection[T]
	Uploader services.Uploader
	Log      *zap.Logger
	Sort     services.Sort
	ErrorKey string
	// NotFound overrides the "<Name> not found" body per action.
	NotFound map[string]string

	Decode func(c *gin.Context) (T, error)
	Patch  func(c *gin.Context) (services.Fields, error)

	Image       *ImageRule[T]
	Unique      *UniqueRule[T]
	View        Envelopes[T]
	AfterDelete func(ctx context.Context, rec T)
}

func (r *Resource[T]) List(c *gin.Context) {
	r.ListWhere(c, nil)
}

// ListWhere returns every matching record; there is no pagination.
func (r *Resource[T]) ListWhere(c *gin.Context, filter services.Filter) {
	recs, err := r.Store.List(c.Request.Context(), filter, r.Sort)
	if err != nil {
		r.fail(c, "fetching", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (r *Resource[T]) Get(c *gin.Context) {
	rec, err := r.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.fail(c, "fetching", err)
		return
	}
	r.View.One(c, http.StatusOK, rec)
}

func (r *Resource[T]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := r.Decode(c)
	if err != nil {
		r.fail(c, "adding", err)
		return
	}

	file := r.imageFile(c)
	if r.Image != nil && r.Image.Required && file == nil {
		r.fail(c, "adding", services.ValidationError{Msg: r.Image.Missing})
		return
	}

	if r.Unique != nil {
		if err := r.checkUnique(ctx, r.Unique.Value(rec), ""); err != nil {
			r.fail(c, "adding", err)
			return
		}
	}

	// The upload happens last so a rejected request never leaves a file behind.
	if file != nil {
		url, err := r.upload(ctx, file)
		if err != nil {
			r.fail(c, "adding", err)
			return
		}
		r.Image.Set(&rec, url)
	}

	if err := r.Store.Create(ctx, &rec); err != nil {
		r.fail(c, "adding", err)
		return
	}
	r.View.Created(c, http.StatusCreated, rec)
}

// Update merges the supplied fields over the stored record; omitted fields
// keep their values.
func (r *Resource[T]) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	fields, err := r.Patch(c)
	if err != nil {
		r.fail(c, "updating", err)
		return
	}
	if fields == nil {
		fields = services.Fields{}
	}

	if _, err := r.Store.Get(ctx, id); err != nil {
		r.fail(c, "updating", err)
		return
	}

	if r.Unique != nil {
		if v, ok := fields[r.Unique.Column]; ok {
			if err := r.checkUnique(ctx, v, id); err != nil {
				r.fail(c, "updating", err)
				return
			}
		}
	}

	if file := r.imageFile(c); file != nil {
		url, err := r.upload(ctx, file)
		if err != nil {
			r.fail(c, "updating", err)
			return
		}
		fields[r.Image.Column] = url
	}

	rec, err := r.Store.Update(ctx, id, fields)
	if err != nil {
		r.fail(c, "updating", err)
		return
	}
	r.View.Updated(c, http.StatusOK, rec)
}

func (r *Resource[T]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := r.Store.Delete(ctx, c.Param("id"))
	if err != nil {
		r.fail(c, "deleting", err)
		return
	}
	if r.AfterDelete != nil {
		r.AfterDelete(ctx, rec)
	}
	utils.JSONMessage(c, http.StatusOK, r.View.Deleted, nil)
}

func (r *Resource[T]) checkUnique(ctx context.Context, value any, selfID string) error {
	existing, err := r.Store.FindOne(ctx, services.Filter{r.Unique.Column: value})
	switch {
	case err == nil:
		if existing.RecordID() == selfID {
			return nil
		}
		return fmt.Errorf("%w: %s=%v", services.ErrConflict, r.Unique.Column, value)
	case errors.Is(err, services.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (r *Resource[T]) imageFile(c *gin.Context) *multipart.FileHeader {
	if r.Image == nil {
		return nil
	}
	file, err := c.FormFile(r.Image.FormField)
	if err != nil {
		return nil
	}
	return file
}

func (r *Resource[T]) upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open attachment: %v", services.ErrUploadFailed, err)
	}
	defer f.Close()

	up, err := r.Uploader.Store(ctx, f, fh.Filename)
	if err != nil {
		return "", err
	}
	return up.URL, nil
}

// fail maps an error to its status. Raw errors are logged, never returned.
func (r *Resource[T]) fail(c *gin.Context, action string, err error) {
	name := strings.ToLower(r.Name)
	switch {
	case services.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, r.ErrorKey, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusUnauthorized, r.ErrorKey, "Not authorized")
	case errors.Is(err, services.ErrNotFound):
		msg, ok := r.NotFound[action]
		if !ok {
			msg = r.Name + " not found"
		}
		utils.JSONError(c, http.StatusNotFound, r.ErrorKey, msg)
	case errors.Is(err, services.ErrConflict):
		msg := r.Name + " already exists"
		if r.Unique != nil && r.Unique.Message != "" {
			msg = r.Unique.Message
		}
		utils.JSONError(c, http.StatusConflict, r.ErrorKey, msg)
	case errors.Is(err, services.ErrUploadFailed):
		r.Log.Error("upload failed", zap.String("resource", name), zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)))
		utils.JSONError(c, http.StatusInternalServerError, r.ErrorKey, "Error uploading image")
	default:
		r.Log.Error("store failure", zap.String("resource", name), zap.String("action", action), zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)))
		utils.JSONError(c, http.StatusInternalServerError, r.ErrorKey, fmt.Sprintf("Error %s %s", action, name))
	}
}
