package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("plain object passes through", func(t *testing.T) {
		got, err := ExtractJSONObject(`{"a": 1}`)
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, got)
	})

	t.Run("strips json code fence", func(t *testing.T) {
		got, err := ExtractJSONObject("```json\n{\"a\": 1}\n```")
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, got)
	})

	t.Run("strips bare code fence", func(t *testing.T) {
		got, err := ExtractJSONObject("```\n{\"a\": 1}\n```")
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, got)
	})

	t.Run("ignores surrounding prose", func(t *testing.T) {
		got, err := ExtractJSONObject("분석 결과는 다음과 같습니다: {\"score\": 75} 감사합니다.")
		require.NoError(t, err)
		assert.Equal(t, `{"score": 75}`, got)
	})

	t.Run("handles nested objects", func(t *testing.T) {
		got, err := ExtractJSONObject(`{"a": {"b": {"c": 1}}} trailing`)
		require.NoError(t, err)
		assert.Equal(t, `{"a": {"b": {"c": 1}}}`, got)
	})

	t.Run("braces inside strings do not break balance", func(t *testing.T) {
		got, err := ExtractJSONObject(`{"text": "불균형 {brace} 포함 \" quote"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"text": "불균형 {brace} 포함 \" quote"}`, got)
	})

	t.Run("no object is an error", func(t *testing.T) {
		_, err := ExtractJSONObject("no json here")
		assert.EqualError(t, err, "no JSON object found in response")
	})

	t.Run("unbalanced object is an error", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"a": {"b": 1}`)
		assert.EqualError(t, err, "unbalanced JSON object in response")
	})
}
