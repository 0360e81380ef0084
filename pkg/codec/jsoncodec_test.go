package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestJSONStrict_RejectsUnknownAndTrailing(t *testing.T) {
	var p payload
	require.NoError(t, JSONStrict.Unmarshal([]byte(`{"name":"a"}`), &p))
	assert.Equal(t, "a", p.Name)

	assert.Error(t, JSONStrict.Unmarshal([]byte(`{"name":"a","x":1}`), &p))
	assert.Error(t, JSONStrict.Unmarshal([]byte(`{"name":"a"} {}`), &p))
}

func TestJSON_Lenient(t *testing.T) {
	var p payload
	require.NoError(t, JSON.Unmarshal([]byte(`{"name":"a","extra":true}`), &p))
	assert.Equal(t, "a", p.Name)

	p = payload{Name: "keep"}
	require.NoError(t, JSON.Unmarshal([]byte("  \n"), &p))
	assert.Equal(t, "keep", p.Name)

	assert.Error(t, JSON.Unmarshal([]byte(`{"name":`), &p))
	assert.Error(t, JSON.Unmarshal([]byte(`{"name":5}`), &p))
}

func TestMarshal_NoHTMLEscapeNoNewline(t *testing.T) {
	b, err := JSON.Marshal(payload{Name: "<a&b>"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"<a&b>"}`, string(b))
	assert.Equal(t, "application/json", JSONStrict.ContentType())
}
