package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"reviewhub/logger"
	"reviewhub/web/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondErr maps a service error onto the wire: ApiError as-is, anything
// else as an opaque 500 with the cause logged.
func respondErr(c *gin.Context, err error) {
	var apiErr *entity.ApiError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusBadRequest {
			c.JSON(apiErr.Status, apiErr.Fields)
			return
		}
		c.JSON(apiErr.Status, gin.H{"detail": apiErr.Detail})
		return
	}
	logger.Warning("request failed:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// bindJSON decodes the body into obj and turns decode failures into
// field-keyed 400 bodies. Returns false when the response was written.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	fields := map[string][]string{}
	var vErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &vErrs):
		for _, fe := range vErrs {
			name := strings.ToLower(fe.Field())
			fields[name] = append(fields[name], "failed on "+fe.Tag()+" validation")
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fields[typeErr.Field] = append(fields[typeErr.Field], "invalid value")
	default:
		fields["non_field_errors"] = append(fields["non_field_errors"], "malformed request body")
	}
	c.JSON(http.StatusBadRequest, fields)
	return false
}

// pathID parses a numeric path segment; anything non-numeric is an
// unresolvable path entity, i.e. 404.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, false
	}
	return id, true
}

// pageParams reads page/page_size query params; bounds are clamped in
// the service layer.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	return page, pageSize
}
