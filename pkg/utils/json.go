package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// DecodePayload converts a message payload decoded as a generic JSON value
// into T. Payloads that already hold a T are returned as is.
func DecodePayload[T any](v any) (T, error) {
	switch payload := v.(type) {
	case T:
		return payload, nil
	case *T:
		if payload != nil {
			return *payload, nil
		}
	}
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return *new(T), errors.WithMessage(err, "marshal json")
	}
	var result T
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}
