package main

import (
	"io"
	"strings"
	"testing"

	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectCell(t *testing.T) {
	tests := []struct {
		input string
		pos   domain.Position
		err   error
	}{
		{input: "2 3\n", pos: domain.Position{X: 2, Y: 3}},
		{input: "  7\t0 \n", pos: domain.Position{X: 7, Y: 0}},
		{input: "2\n", err: errBadInput},
		{input: "a b\n", err: errBadInput},
		{input: "8 0\n", err: domain.ErrInvalidPosition},
		{input: "", err: io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := newClient(nil, strings.NewReader(tt.input))
			pos, err := c.selectCell()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pos, pos)
		})
	}
}

func TestReadMoveRetriesBadInput(t *testing.T) {
	c := newClient(nil, strings.NewReader("x\n9 9\n4 5\n"))
	pos, err := c.readMove()
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 4, Y: 5}, pos)
}

func TestReadMoveStopsOnEOF(t *testing.T) {
	c := newClient(nil, strings.NewReader("x\n1\n"))
	_, err := c.readMove()
	assert.ErrorIs(t, err, io.EOF)
}
