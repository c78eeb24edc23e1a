package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor accepts UTF-8 text files. Carriage returns are folded into
// newlines so paragraph boundaries survive Windows line endings.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) || bytes.IndexByte(raw, 0) >= 0 {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract plain text", fmt.Errorf("input is not utf-8 text"))
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text), nil
}
