package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v4"
)

// jsonNodeBuilder decodes JSON into a yaml.Node tree with encoding/json so
// escapes YAML does not accept (such as \/) load, while mapping order and
// line numbers are kept for the decoder.
type jsonNodeBuilder struct {
	data []byte
	dec  *json.Decoder
}

// decodeJSONNodes parses data as a single JSON value.
func decodeJSONNodes(data []byte) (*yaml.Node, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	b := &jsonNodeBuilder{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	b.dec.UseNumber()

	value, err := b.value()
	if err != nil {
		return nil, err
	}
	if _, err := b.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("line %d: unexpected data after top-level value", b.line())
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Line: 1, Column: 1, Content: []*yaml.Node{value}}, nil
}

// line is the 1-based line of the decoder's current offset.
func (b *jsonNodeBuilder) line() int {
	off := min(int(b.dec.InputOffset()), len(b.data))
	return 1 + bytes.Count(b.data[:off], []byte("\n"))
}

func (b *jsonNodeBuilder) value() (*yaml.Node, error) {
	tok, err := b.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("line %d: %w", b.line(), err)
	}
	// The offset sits just past the token, which never spans lines.
	return b.node(tok, b.line())
}

func (b *jsonNodeBuilder) node(tok json.Token, line int) (*yaml.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return b.object(line)
		case '[':
			return b.array(line)
		}
		return nil, fmt.Errorf("line %d: unexpected %q", line, rune(v))
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle, Line: line}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String(), Line: line}, nil
	case bool:
		raw := "false"
		if v {
			raw = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: raw, Line: line}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line}, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected token %v", line, tok)
	}
}

func (b *jsonNodeBuilder) object(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}
	for b.dec.More() {
		key, err := b.value()
		if err != nil {
			return nil, err
		}
		value, err := b.value()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, key, value)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, fmt.Errorf("line %d: %w", b.line(), err)
	}
	return n, nil
}

func (b *jsonNodeBuilder) array(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}
	for b.dec.More() {
		item, err := b.value()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, item)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, fmt.Errorf("line %d: %w", b.line(), err)
	}
	return n, nil
}
