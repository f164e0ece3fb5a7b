package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Entry is one asset's metadata, keyed by its position in metadata.json.
type Entry struct {
	Index int
	// Metadata is the normalized JSON encoding of the entry.
	Metadata json.RawMessage
}

// LoadMetadata reads a JSON array and returns one Entry per element, in order.
func LoadMetadata(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.AssetsReadMetadataFmt, path, err)
	}
	return ParseMetadata(data, path)
}

// ParseMetadata decodes a JSON array of arbitrary values; source names the input in errors.
// A top-level null is rejected rather than read as an empty collection.
func ParseMetadata(data []byte, source string) ([]Entry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.AssetsParseMetadataFmt, source, err)
	}
	if raw == nil {
		return nil, fmt.Errorf(messages.AssetsParseMetadataFmt, source, errors.New(messages.AssetsMetadataNotArray))
	}
	entries := make([]Entry, len(raw))
	for i, item := range raw {
		normalized, err := normalizeJSON(item)
		if err != nil {
			return nil, fmt.Errorf(messages.AssetsCompactEntryFmt, i, err)
		}
		entries[i] = Entry{Index: i, Metadata: normalized}
	}
	return entries, nil
}

// normalizeJSON re-encodes one JSON value the way a JSON.parse and JSON.stringify round
// trip does: object key order is kept, whitespace dropped, numbers written in their
// shortest float64 form and strings with only the escapes JSON requires.
func normalizeJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	type frame struct {
		object bool
		n      int
	}
	var (
		buf   bytes.Buffer
		stack []frame
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			buf.WriteByte(byte(d))
			continue
		}
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			switch {
			case top.n == 0:
			case top.object && top.n%2 == 1:
				buf.WriteByte(':')
			default:
				buf.WriteByte(',')
			}
			top.n++
		}

		switch v := tok.(type) {
		case json.Delim:
			buf.WriteByte(byte(v))
			stack = append(stack, frame{object: v == '{'})
		case json.Number:
			buf.WriteString(formatNumber(string(v)))
		case string:
			if err := writeString(&buf, v); err != nil {
				return nil, err
			}
		case bool:
			buf.WriteString(strconv.FormatBool(v))
		case nil:
			buf.WriteString("null")
		}
	}
	return buf.Bytes(), nil
}

// formatNumber renders a JSON number as a float64; values out of range become null.
func formatNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return literal
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		f = 0
	}
	out, err := json.Marshal(f)
	if err != nil {
		return literal
	}
	return string(out)
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
