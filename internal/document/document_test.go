package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\r\n\t  "} {
		doc, err := Preprocess(raw, 100)
		require.ErrorIs(t, err, ErrEmptyDocument)
		assert.Nil(t, doc)
	}
}

func TestPreprocessNormalizes(t *testing.T) {
	raw := "John  Doe\r\n\tSenior   Engineer \r\n\n\n\n\nSKILLS  Go"

	doc, err := Preprocess(raw, 0)
	require.NoError(t, err)

	assert.Equal(t, "John Doe\nSenior Engineer\n\nSKILLS Go", doc.Full)
	assert.Equal(t, doc.Full, doc.Truncated)
	assert.False(t, doc.WasTruncated)
	assert.Equal(t, 6, doc.Words)
	assert.Equal(t, len([]rune(doc.Full)), doc.Chars)
}

func TestSmartTruncateKeepsHeadAndTail(t *testing.T) {
	head := strings.Repeat("a", 2400)
	middle := strings.Repeat("Z", 4000)
	tail := strings.Repeat("c", 1600)
	text := head + middle + tail
	require.Len(t, text, 8000)

	out, cut := SmartTruncate(text, 4000)
	require.True(t, cut)

	assert.True(t, strings.HasPrefix(out, head))
	assert.True(t, strings.HasSuffix(out, tail))
	assert.Contains(t, out, ElisionMarker)
	assert.NotContains(t, out, "Z")
	assert.Equal(t, 2400+len(ElisionMarker)+1600, len(out))
}

func TestSmartTruncateUnderCeiling(t *testing.T) {
	out, cut := SmartTruncate("short text", 4000)
	assert.False(t, cut)
	assert.Equal(t, "short text", out)

	out, cut = SmartTruncate("short text", 0)
	assert.False(t, cut)
	assert.Equal(t, "short text", out)
}

func TestPreprocessTruncatesOnlyExtractionCopy(t *testing.T) {
	raw := strings.Repeat("x", 3000) + strings.Repeat("y", 3000)

	doc, err := Preprocess(raw, 1000)
	require.NoError(t, err)

	assert.True(t, doc.WasTruncated)
	assert.Equal(t, raw, doc.Full)
	assert.Equal(t, 6000, doc.Chars)
	assert.True(t, strings.HasPrefix(doc.Truncated, strings.Repeat("x", 600)))
	assert.True(t, strings.HasSuffix(doc.Truncated, strings.Repeat("y", 200)))
}

func TestSmartTruncateMultibyte(t *testing.T) {
	text := strings.Repeat("ж", 50) + strings.Repeat("ё", 50)

	out, cut := SmartTruncate(text, 10)
	require.True(t, cut)
	assert.Equal(t, strings.Repeat("ж", 6)+ElisionMarker+strings.Repeat("ё", 2), out)
}
