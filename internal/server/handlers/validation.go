package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// Request structs declare their user-facing failure text in a msg tag next to
// the binding rules. A msg_<rule> tag overrides it for a single rule.
const messageTag = "msg"

var registerOnce sync.Once

// RegisterValidators installs the custom rules on gin's validator. It is safe
// to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("trimmin", trimMin)
	})
}

// trimMin checks the length of a string after surrounding whitespace is removed.
func trimMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// bindJSON decodes the body into dst and converts decoding and validation
// failures into validation errors carrying the field's msg tag. An empty body
// is validated as an empty object.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(dst)
	}
	if err == nil {
		return nil
	}

	var typed *models.Error
	if errors.As(err, &typed) {
		return typed
	}

	root := reflect.TypeOf(dst)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		_, path, _ := strings.Cut(fe.StructNamespace(), ".")
		if msg := lookupTag(root, strings.Split(path, "."), byGoName, fe.Tag()); msg != "" {
			return models.ValidationError(msg)
		}
		return models.ValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if msg := lookupTag(root, strings.Split(typeErr.Field, "."), byJSONName, ""); msg != "" {
			return models.ValidationError(msg)
		}
		return models.ValidationError(fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}

	return models.ValidationError("Invalid request body")
}

type fieldMatcher func(f reflect.StructField, name string) bool

func byGoName(f reflect.StructField, name string) bool { return f.Name == name }

func byJSONName(f reflect.StructField, name string) bool {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return tag == name
}

// lookupTag walks path through nested structs, slices and pointers and
// returns the message of the deepest field that has one. On the last field a
// msg_<rule> tag wins over msg.
func lookupTag(t reflect.Type, path []string, match fieldMatcher, rule string) string {
	var found string
	for i, segment := range path {
		segment, _, _ = strings.Cut(segment, "[")
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		next, ok := findField(t, segment, match)
		if !ok {
			break
		}
		if msg := next.Tag.Get(messageTag); msg != "" {
			found = msg
		}
		if i == len(path)-1 && rule != "" {
			if msg := next.Tag.Get(messageTag + "_" + rule); msg != "" {
				found = msg
			}
		}
		t = next.Type
	}
	return found
}

func findField(t reflect.Type, name string, match fieldMatcher) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); match(f, name) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
