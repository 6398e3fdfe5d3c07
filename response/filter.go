package response

import (
	"encoding/json"

	"github.com/jmespath/go-jmespath"
	"github.com/pkg/errors"
)

// Filter applies a JMESPath expression to a JSON body and returns a copy of
// r whose body is the result. The original body is left untouched.
func (r *Response) Filter(expression string) (*Response, error) {
	if !r.IsJSON() {
		return nil, errors.New("filter requires a JSON response body")
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid JMESPath expression '%s'", expression)
	}

	var data interface{}
	if err := json.Unmarshal([]byte(r.BodyText), &data); err != nil {
		return nil, errors.Wrap(err, "parsing response body as JSON")
	}
	result, err := jp.Search(data)
	if err != nil {
		return nil, errors.Wrap(err, "JMESPath search failed")
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, "encoding filter result")
	}
	display, err := FormatJSON(string(encoded))
	if err != nil {
		return nil, err
	}

	filtered := *r
	filtered.HeaderLines = append([]string(nil), r.HeaderLines...)
	filtered.BodyText = string(encoded)
	filtered.Display = display
	return &filtered, nil
}
