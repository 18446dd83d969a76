package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Unmarshal(t *testing.T) {
	type payload struct {
		Name     Optional[string] `json:"name"`
		ParentID Optional[*uint]  `json:"parent_id"`
	}

	t.Run("字段没传", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.Set)
		assert.False(t, p.ParentID.Set)
	})

	t.Run("传了值", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":"AI","parent_id":3}`), &p))
		assert.True(t, p.Name.Set)
		assert.Equal(t, "AI", p.Name.Value)
		require.True(t, p.ParentID.Set)
		require.NotNil(t, p.ParentID.Value)
		assert.Equal(t, uint(3), *p.ParentID.Value)
	})

	t.Run("显式传 null", func(t *testing.T) {
		// 传 null 和没传必须能区分开：Set=true 但值为零值
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":null,"parent_id":null}`), &p))
		assert.True(t, p.Name.Set)
		assert.Equal(t, "", p.Name.Value)
		assert.True(t, p.ParentID.Set)
		assert.Nil(t, p.ParentID.Value)
	})
}

func TestOptional_Marshal(t *testing.T) {
	raw, err := json.Marshal(Optional[string]{Set: true, Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(raw))

	raw, err = json.Marshal(Optional[string]{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))
}
