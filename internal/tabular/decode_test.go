package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestDecodeText(t *testing.T) {
	t.Run("Plain UTF-8 passes through", func(t *testing.T) {
		out, err := DecodeText([]byte("SKU,颜色\nA1,红\n"))
		require.NoError(t, err)
		assert.Equal(t, "SKU,颜色\nA1,红\n", out)
	})

	t.Run("UTF-8 BOM stripped", func(t *testing.T) {
		in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("SKU,Price\nA,1\n")...)
		out, err := DecodeText(in)
		require.NoError(t, err)
		assert.Equal(t, "SKU,Price\nA,1\n", out)
	})

	t.Run("GB18030 decoded", func(t *testing.T) {
		src := "SKU,颜色,库存\nA1,红,5\n"
		encoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewEncoder(), []byte(src))
		require.NoError(t, err)
		// Sanity: the encoded bytes must not already be valid UTF-8.
		require.NotEqual(t, src, string(encoded))

		out, err := DecodeText(encoded)
		require.NoError(t, err)
		assert.Equal(t, src, out)
	})
}
