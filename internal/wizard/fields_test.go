// AngelaMos | 2026
// fields_test.go

package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchDecodesMixedValues(t *testing.T) {
	var p Patch
	err := json.Unmarshal([]byte(`{"full_name":"Jane","age":34,"coverage_amount":12.5,"subscribe":true,"message":null}`), &p)
	require.NoError(t, err)

	require.NotNil(t, p["full_name"])
	assert.Equal(t, "Jane", *p["full_name"])
	assert.Equal(t, "34", *p["age"])
	assert.Equal(t, "12.5", *p["coverage_amount"])
	assert.Equal(t, "true", *p["subscribe"])

	v, ok := p["message"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestPatchRejectsNestedValues(t *testing.T) {
	var p Patch
	err := json.Unmarshal([]byte(`{"full_name":{"first":"Jane"}}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full_name")
}

func TestFieldsHasIgnoresWhitespace(t *testing.T) {
	f := Fields{"a": "  ", "b": "x"}
	assert.False(t, f.Has("a"))
	assert.True(t, f.Has("b"))
	assert.False(t, f.Has("c"))
}
