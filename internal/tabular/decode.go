package tabular

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw import bytes to UTF-8 text. Spreadsheet
// tools commonly emit a UTF-8 BOM or, for the zh locale the header
// aliases serve, GB18030-encoded files; both are handled here so Parse
// only ever sees clean UTF-8.
func DecodeText(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)

	if utf8.Valid(b) {
		return string(b), nil
	}

	decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("failed to decode import file: %w", err)
	}
	return string(decoded), nil
}
