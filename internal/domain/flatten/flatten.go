package flatten

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// separator is emitted between the key-value pairs of an object. The pair
// separator after the last pair of each object is dropped.
const separator = ","

// Flatten converts a raw JSON document into a single cleaned text line by
// depth-first traversal. It consumes the raw bytes rather than a decoded
// value so that object keys keep their document order. Malformed JSON is a
// hard error; an empty object or array yields an empty string.
func Flatten(doc []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errors.New("flatten: empty document")
		}
		return "", fmt.Errorf("flatten: decode document: %w", err)
	}

	tokens, err := flattenValue(dec, tok, nil)
	if err != nil {
		return "", err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", errors.New("flatten: trailing data after document")
	}
	return strings.Join(tokens, " "), nil
}

func flattenValue(dec *json.Decoder, tok json.Token, out []string) ([]string, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return flattenObject(dec, out)
		case '[':
			return flattenArray(dec, out)
		default:
			return nil, fmt.Errorf("flatten: unexpected delimiter %q", v)
		}
	case string:
		return append(out, cleanString(v)), nil
	case json.Number:
		return append(out, v.String()), nil
	case bool:
		return append(out, strconv.FormatBool(v)), nil
	case nil:
		return append(out, "None"), nil
	default:
		return nil, fmt.Errorf("flatten: unsupported token %T", tok)
	}
}

func flattenObject(dec *json.Decoder, out []string) ([]string, error) {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("flatten: decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("flatten: object key is %T, want string", keyTok)
		}
		// Keys only have newlines replaced, they deliberately skip the full
		// string cleaning pass applied to values.
		out = append(out, strings.ReplaceAll(key, "\n", " "))

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("flatten: decode value for key %q: %w", key, err)
		}
		out, err = flattenValue(dec, valTok, out)
		if err != nil {
			return nil, err
		}
		if dec.More() {
			out = append(out, separator)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("flatten: close object: %w", err)
	}
	return out, nil
}

func flattenArray(dec *json.Decoder, out []string) ([]string, error) {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("flatten: decode array element: %w", err)
		}
		out, err = flattenValue(dec, tok, out)
		if err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("flatten: close array: %w", err)
	}
	return out, nil
}

// cleanString normalizes a string value: backslash-escaped double and single
// quotes become their literal characters, any remaining unescaped double
// quote is dropped, and runs of whitespace (including line breaks) collapse
// to a single space with the ends trimmed.
func cleanString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\'') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if c == '"' {
			continue
		}
		b.WriteByte(c)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
