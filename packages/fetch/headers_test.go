package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

func TestHeaders_AppendKeepsDuplicates(t *testing.T) {
	h := NewHeaders().
		Append("Set-Cookie", "a=1").
		Append("Set-Cookie", "b=2")

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "a=1", h.Get("Set-Cookie"))
	assert.Equal(t, []string{"a=1", "b=2"}, h.Values("Set-Cookie"))
}

func TestHeaders_GetIsCaseInsensitive(t *testing.T) {
	h := NewHeaders().Append("Content-Type", "text/plain")

	assert.Equal(t, "text/plain", h.Get("content-type"))
	assert.True(t, h.Has("CONTENT-TYPE"))
	assert.False(t, h.Has("Accept"))
	assert.Empty(t, h.Get("Accept"))
}

func TestHeaders_EachPreservesInsertionOrder(t *testing.T) {
	h := NewHeaders().
		Append("B", "2").
		Append("A", "1").
		Append("B", "3")

	var seen []string
	h.Each(func(name, value string) {
		seen = append(seen, name+"="+value)
	})

	assert.Equal(t, []string{"B=2", "A=1", "B=3"}, seen)
}

func TestHeadersFrom_EmptyInputYieldsEmptyCollection(t *testing.T) {
	h := HeadersFrom(nil)

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Get("Anything"))
}

func TestHeaders_CloneIsIndependent(t *testing.T) {
	h := NewHeaders().Append("X", "1")
	clone := h.Clone()
	clone.Append("X", "2")

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestHeaders_FieldsReturnsCopy(t *testing.T) {
	h := NewHeaders().Append("X", "1")
	fields := h.Fields()
	fields[0] = transport.Field{Name: "Y", Value: "2"}

	assert.Equal(t, "1", h.Get("X"))
}
