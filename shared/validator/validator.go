package validator

import (
	"dinebook/shared/base64"
	"dinebook/shared/constant"
	"dinebook/shared/failure"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match what the client sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	custom := map[string]val.Func{
		"hhmm":        isClock,
		"mimetypes":   hasMimetype,
		"maxfilesize": withinFileSize,
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// isClock accepts zero-padded 24h wall-clock values such as "09:30".
func isClock(field val.FieldLevel) bool {
	value := field.Field().String()
	if len(value) != len(constant.TimeLayout) {
		return false
	}

	_, err := time.Parse(constant.TimeLayout, value)

	return err == nil
}

// hasMimetype checks an uploaded file header or a base64 data uri against a space separated allow list.
func hasMimetype(field val.FieldLevel) bool {
	var contentType string

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = v.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(v)
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// withinFileSize compares against a limit in megabytes. Data uris are measured by decoded size.
func withinFileSize(field val.FieldLevel) bool {
	limitMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	var size int64

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		size = v.Size
	case string:
		_, payload, _ := strings.Cut(v, ",")
		size = int64(len(payload)) * 3 / 4
	}

	return float64(size) <= limitMB*bytesPerMB
}

// Validate decodes a JSON body into data and runs the struct's validate tags.
// Both decode and validation problems come back as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
