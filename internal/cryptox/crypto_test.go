package cryptox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical_SortsNestedKeys(t *testing.T) {
	a := json.RawMessage(`{"b":1,"a":{"y":true,"x":[{"k2":2,"k1":1}]}}`)
	b := json.RawMessage(`{ "a": {"x": [{"k1":1, "k2":2}], "y": true}, "b": 1 }`)

	ca, err := Canonical(a)
	require.NoError(t, err)
	cb, err := Canonical(b)
	require.NoError(t, err)

	assert.Equal(t, `{"a":{"x":[{"k1":1,"k2":2}],"y":true},"b":1}`, string(ca))
	assert.Equal(t, ca, cb)
}

func TestCanonical_KeepsNumberText(t *testing.T) {
	got, err := Canonical(json.RawMessage(`{"n":12345678901234567890}`))
	require.NoError(t, err)
	assert.Equal(t, `{"n":12345678901234567890}`, string(got))
}

func TestDigest(t *testing.T) {
	type cfg struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	d1, err := Digest(cfg{Name: "Acme", Color: "#2563eb"})
	require.NoError(t, err)
	d2, err := Digest(map[string]any{"color": "#2563eb", "name": "Acme"})
	require.NoError(t, err)
	d3, err := Digest(cfg{Name: "Acme", Color: "#1e40af"})
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "a": 1}))
	assert.False(t, Equal([]int{1, 2}, []int{2, 1}))
	assert.False(t, Equal(make(chan int), make(chan int)))
	assert.True(t, Equal(nil, nil))
}
