package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Decode reads one JSON value from r into a tree.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after document")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string, json.Number, bool, nil:
		return Scalar{Value: v}, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeArray(dec *json.Decoder) (Node, error) {
	seq := Sequence{}
	for dec.More() {
		n, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		seq = append(seq, n)
	}
	// closing ]
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return seq, nil
}

func decodeObject(dec *json.Decoder) (Node, error) {
	m := Mapping{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m = append(m, Pair{Key: key, Value: val})
	}
	// closing }
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if t, ok := asTyped(m); ok {
		return t, nil
	}
	return m, nil
}

// asTyped recognizes {"t": kind} and {"t": kind, "c": payload} in either key order.
func asTyped(m Mapping) (*Typed, bool) {
	if len(m) == 0 || len(m) > 2 {
		return nil, false
	}
	var (
		kind    string
		hasKind bool
		content Node
	)
	for _, p := range m {
		switch p.Key {
		case "t":
			s, ok := p.Value.(Scalar)
			if !ok {
				return nil, false
			}
			kind, hasKind = s.Text()
			if !hasKind {
				return nil, false
			}
		case "c":
			content = p.Value
		default:
			return nil, false
		}
	}
	if !hasKind {
		return nil, false
	}
	return &Typed{Kind: kind, Content: content}, true
}

// Encode writes n as compact JSON followed by a newline.
func Encode(w io.Writer, n Node) error {
	var buf bytes.Buffer
	if err := encodeValue(&buf, n); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// Marshal returns the compact JSON encoding of n.
func Marshal(n Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, n Node) error {
	switch v := n.(type) {
	case nil:
		buf.WriteString("null")
	case Scalar:
		return encodeScalar(buf, v)
	case Sequence:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Mapping:
		buf.WriteByte('{')
		for i, p := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, p.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *Typed:
		buf.WriteString(`{"t":`)
		if err := encodeString(buf, v.Kind); err != nil {
			return err
		}
		if v.Content != nil {
			buf.WriteString(`,"c":`)
			if err := encodeValue(buf, v.Content); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node of type %T", n)
	}
	return nil
}

func encodeScalar(buf *bytes.Buffer, s Scalar) error {
	switch v := s.Value.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		return encodeString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	default:
		return fmt.Errorf("cannot encode scalar of type %T", s.Value)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	// pandoc reads raw markup verbatim, so <, > and & must not be turned into \u escapes.
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder.Encode always appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
