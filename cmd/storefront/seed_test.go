package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	in := `
products:
  - name: Ring
    description: Silver ring
    price: "10.00"
    images: [ring.jpg]
    category: rings
    inventory: 5
    featured: true
  - name: Chain
    description: Gold chain
    price: 5.5
    images: [chain.jpg, chain-2.jpg]
    category: chains
    inventory: 3
`
	got, err := parseSeed(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ring", got[0].Name)
	assert.True(t, got[0].Featured)
	assert.Equal(t, "10", got[0].Price.String())
	assert.Equal(t, "5.5", got[1].Price.String())
	assert.Equal(t, []string{"chain.jpg", "chain-2.jpg"}, got[1].Images)
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	_, err := parseSeed(strings.NewReader("products:\n  - name: X\n    price: cheap\n"))
	assert.Error(t, err)

	_, err = parseSeed(strings.NewReader("products:\n  - name: X\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}
