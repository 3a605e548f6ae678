package utils

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls the plain text out of a PDF document. A document with
// no extractable text yields an empty string, not an error.
func ExtractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	txt, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, txt); err != nil {
		return "", err
	}
	return buf.String(), nil
}
