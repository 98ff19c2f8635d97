// Package render writes API responses as JSON whose string values are
// HTML-escaped, so review text can be dropped into a page as-is.
package render

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const contentType = "application/json; charset=utf-8"

var entities = map[byte]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'\'': "&#39;",
	'"':  "&quot;",
	'(':  "&#40;",
	')':  "&#41;",
	'#':  "&#35;",
}

// EscapedJSON is a gin render.Render for escaped bodies.
type EscapedJSON struct {
	Data any
}

func (r EscapedJSON) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	body, err := Marshal(r.Data)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func (r EscapedJSON) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{contentType}
	}
}

// JSON renders body with the given status.
func JSON(c *gin.Context, status int, body any) {
	c.Render(status, EscapedJSON{Data: body})
}

// Error renders {"error": message}.
func Error(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"error": message})
}

// Marshal encodes v as JSON and escapes HTML-significant characters inside
// string literals. Keys are strings too and get the same treatment.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")
	return escapeStrings(raw), nil
}

func escapeStrings(raw []byte) []byte {
	out := make([]byte, 0, len(raw)+len(raw)/8)
	inString := false
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if !inString {
			if b == '"' {
				inString = true
			}
			out = append(out, b)
			continue
		}
		switch b {
		case '\\':
			if i+1 < len(raw) && raw[i+1] == '"' {
				// an escaped quote is content, not a delimiter
				out = append(out, entities['"']...)
				i++
				continue
			}
			out = append(out, b)
			if i+1 < len(raw) {
				out = append(out, raw[i+1])
				i++
			}
		case '"':
			inString = false
			out = append(out, b)
		default:
			if e, ok := entities[b]; ok {
				out = append(out, e...)
			} else {
				out = append(out, b)
			}
		}
	}
	return out
}
