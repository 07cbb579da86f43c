package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin context plus the request-scoped context.Context
// the repositories work against.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrors []FieldError
	paramErrors []FieldError
}

func NewContext(c *gin.Context) *Context {
	return &Context{
		Context: c,
		Ctx:     c.Request.Context(),
	}
}

// BindFunc binds the request body into dst and checks that every field named
// in required is present. Pointer fields must be non-nil, strings non-empty.
func (c *Context) BindFunc(dst interface{}, required ...string) error {
	if err := c.ShouldBind(dst); err != nil {
		return NewRequestError(errors.Wrap(err, "parsing request body"), http.StatusBadRequest)
	}

	var fields []FieldError

	v := reflect.ValueOf(dst).Elem()
	for _, name := range required {
		f := v.FieldByName(name)
		if !f.IsValid() {
			fields = append(fields, FieldError{Field: name, Error: "unknown field"})
			continue
		}
		missing := false
		switch f.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			missing = f.IsNil()
		case reflect.String:
			missing = f.Len() == 0
		default:
			missing = f.IsZero()
		}
		if missing {
			fields = append(fields, FieldError{Field: name, Error: "field is required"})
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetQueryFunc reads an optional query parameter and returns it as a typed
// pointer. A missing parameter yields a typed nil so the caller's type
// assertion still succeeds.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value := c.Query(name)

	switch kind {
	case reflect.Int:
		if value == "" {
			return (*int)(nil)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "expected an integer"})
			return (*int)(nil)
		}
		return &n
	case reflect.Bool:
		if value == "" {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "expected a boolean"})
			return (*bool)(nil)
		}
		return &b
	case reflect.String:
		if value == "" {
			return (*string)(nil)
		}
		s := strings.TrimSpace(value)
		return &s
	default:
		c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: fmt.Sprintf("unsupported query kind %s", kind)})
		return nil
	}
}

// GetParam reads a path parameter and returns it as a concrete value.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "expected an integer"})
			return 0
		}
		return n
	case reflect.String:
		if value == "" {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "parameter is required"})
		}
		return value
	default:
		c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: fmt.Sprintf("unsupported param kind %s", kind)})
		return nil
	}
}

// ValidQuery reports every query parameter that failed to parse.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid query parameters"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrors,
	}
}

// ValidParam reports every path parameter that failed to parse.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid path parameters"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrors,
	}
}

// Respond sends a JSON response with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

// RespondError translates an application error into the uniform error
// envelope. Unknown errors become a generic 500 so internals never leak.
func (c *Context) RespondError(err error) error {
	if webErr := GetRequestError(err); webErr != nil {
		body := gin.H{
			"success": false,
			"message": webErr.Err.Error(),
		}
		if len(webErr.Fields) > 0 {
			body["errors"] = webErr.Fields
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	log.Printf("internal error: %+v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "internal server error",
	})
	return nil
}
