// Package jsonfmt re-serializes JSON documents for display.
//
// Unlike json.MarshalIndent on a decoded value, the output keeps the key order
// and the number literals of the input. String escapes such as \u26a1 are
// written as the characters they represent, and HTML characters are left
// alone.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a piece of formatted output so that it can be colorized.
type Kind int

const (
	Name Kind = iota
	String
	Number
	Boolean
	Null
	Symbol
)

// Colorizer decorates one token. It must not change the visible text.
type Colorizer func(kind Kind, text string) string

type Options struct {
	Indent   string
	Colorize Colorizer
}

// DefaultIndent is the indentation used when Options.Indent is empty.
const DefaultIndent = "  "

// Valid reports whether data is a single, complete JSON value.
func Valid(data []byte) bool {
	return json.Valid(data)
}

// Format returns the indented form of data. The input must be exactly one
// JSON value, surrounding whitespace aside.
func Format(data []byte, options *Options) (string, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return "", errors.Wrap(err, "parsing JSON")
	}

	if options == nil {
		options = &Options{}
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	f := &formatter{
		decoder:  decoder,
		indent:   options.Indent,
		colorize: options.Colorize,
	}
	if f.indent == "" {
		f.indent = DefaultIndent
	}
	if err := f.value(0); err != nil {
		return "", err
	}
	return f.out.String(), nil
}

type formatter struct {
	decoder  *json.Decoder
	indent   string
	colorize Colorizer
	out      strings.Builder
}

func (f *formatter) value(depth int) error {
	token, err := f.decoder.Token()
	if err != nil {
		return errors.Wrap(err, "reading JSON token")
	}
	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			return f.container(depth, '{', '}', true)
		case '[':
			return f.container(depth, '[', ']', false)
		default:
			return errors.Errorf("unexpected delimiter: %v", t)
		}
	case string:
		f.write(String, quote(t))
	case json.Number:
		f.write(Number, t.String())
	case bool:
		f.write(Boolean, strconv.FormatBool(t))
	case nil:
		f.write(Null, "null")
	default:
		return errors.Errorf("unexpected JSON token: %v", token)
	}
	return nil
}

func (f *formatter) container(depth int, open, close byte, isObject bool) error {
	if !f.decoder.More() {
		if _, err := f.decoder.Token(); err != nil {
			return errors.Wrap(err, "reading JSON token")
		}
		f.write(Symbol, string([]byte{open, close}))
		return nil
	}

	f.write(Symbol, string(open))
	f.out.WriteByte('\n')
	for f.decoder.More() {
		f.writeIndent(depth + 1)
		if isObject {
			token, err := f.decoder.Token()
			if err != nil {
				return errors.Wrap(err, "reading JSON token")
			}
			name, ok := token.(string)
			if !ok {
				return errors.Errorf("unexpected object key: %v", token)
			}
			f.write(Name, quote(name))
			f.write(Symbol, ":")
			f.out.WriteByte(' ')
		}
		if err := f.value(depth + 1); err != nil {
			return err
		}
		if f.decoder.More() {
			f.write(Symbol, ",")
		}
		f.out.WriteByte('\n')
	}
	if _, err := f.decoder.Token(); err != nil {
		return errors.Wrap(err, "reading JSON token")
	}
	f.writeIndent(depth)
	f.write(Symbol, string(close))
	return nil
}

func (f *formatter) write(kind Kind, text string) {
	if f.colorize != nil {
		text = f.colorize(kind, text)
	}
	f.out.WriteString(text)
}

func (f *formatter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		f.out.WriteString(f.indent)
	}
}

func quote(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
