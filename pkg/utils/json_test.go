package utils

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Cells [2]int8
}

func TestDecodePayload(t *testing.T) {
	expected := payload{Name: "move", Cells: [2]int8{1, -1}}

	var generic any
	require.NoError(t, jsoniter.UnmarshalFromString(`{"Name":"move","Cells":[1,-1]}`, &generic))

	tests := []struct {
		name string
		v    any
	}{
		{name: "generic json value", v: generic},
		{name: "value", v: expected},
		{name: "pointer", v: &expected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload[payload](tt.v)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}
}

func TestDecodePayloadMismatch(t *testing.T) {
	_, err := DecodePayload[payload](map[string]any{"Cells": "not an array"})
	assert.Error(t, err)
}
