package otel

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Scope is a span handle that keeps callers off the otel API.
type Scope interface {
	End()
	TraceError(err error)
	// TraceIfError takes a pointer so a deferred call sees the function's final error.
	TraceIfError(err *error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type span struct {
	oteltrace.Span
}

func NewScope(s oteltrace.Span) Scope {
	return span{Span: s}
}

func (s span) End() {
	s.Span.End()
}

func (s span) AddEvent(name string) {
	s.Span.AddEvent(name)
}

func (s span) TraceError(err error) {
	if err == nil {
		return
	}

	s.RecordError(err)
	s.SetStatus(codes.Error, err.Error())
}

func (s span) TraceIfError(err *error) {
	if err != nil {
		s.TraceError(*err)
	}
}

func (s span) SetAttribute(key string, value any) {
	s.Span.SetAttributes(keyValue(key, value))
}

func (s span) SetAttributes(attributes map[string]any) {
	if len(attributes) == 0 {
		return
	}

	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, keyValue(key, value))
	}

	s.Span.SetAttributes(kvs...)
}

// keyValue falls back to the fmt rendering for types otel has no attribute for.
func keyValue(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprint(val))
	}
}
