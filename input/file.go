package input

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type requestFile struct {
	Method      string      `yaml:"method"`
	URL         string      `yaml:"url"`
	ContentType string      `yaml:"content_type"`
	Headers     fileLines   `yaml:"headers"`
	Params      fileLines   `yaml:"params"`
	Auth        requestAuth `yaml:"auth"`
	Body        fileBody    `yaml:"body"`
}

type requestAuth struct {
	Type     string `yaml:"type"`
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Key      string `yaml:"key"`
}

// fileLines accepts either a block string with one entry per line or a list.
type fileLines []string

func (l *fileLines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = SplitLines(s)
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
	default:
		return errors.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
	return nil
}

// fileBody accepts a string, or a mapping/sequence that is sent as JSON.
type fileBody string

func (b *fileBody) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*b = fileBody(s)
		return nil
	}

	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "line %d: body cannot be converted to JSON", node.Line)
	}
	*b = fileBody(data)
	return nil
}

// LoadFile reads a YAML request file.
func LoadFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening request file '%s'", path)
	}
	defer f.Close()
	return decodeFile(f, path)
}

func decodeFile(r io.Reader, path string) (*Spec, error) {
	var rf requestFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parsing request file '%s'", path)
	}

	mode, err := ParseAuthMode(rf.Auth.Type)
	if err != nil {
		return nil, err
	}
	field1 := rf.Auth.Token
	if field1 == "" {
		field1 = rf.Auth.Username
	}
	if field1 == "" {
		field1 = rf.Auth.Key
	}

	return &Spec{
		Method:      Method(rf.Method),
		URL:         rf.URL,
		ContentType: rf.ContentType,
		Headers:     rf.Headers,
		Params:      rf.Params,
		Auth: Auth{
			Mode:   mode,
			Field1: field1,
			Field2: rf.Auth.Password,
		},
		Body: string(rf.Body),
	}, nil
}

// ReadBody returns the content of path, or of stdin when path is "-".
func ReadBody(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading body from stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading body file %s", path)
	}
	return string(b), nil
}
