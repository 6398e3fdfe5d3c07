package output

import (
	"mime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
)

const (
	highlightStyle     = "monokai"
	highlightFormatter = "terminal256"
)

// lexerFor returns the lexer registered for the media type of contentType,
// or nil if there is none.
func lexerFor(contentType string) chroma.Lexer {
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	}
	return lexers.MatchMimeType(mediaType)
}

// highlight renders text with terminal colors. ok is false when no lexer
// matches contentType, in which case text should be printed as is.
func highlight(contentType, text string) (string, bool, error) {
	lexer := lexerFor(contentType)
	if lexer == nil {
		return "", false, nil
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get(highlightFormatter)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", false, errors.Wrap(err, "tokenizing response body")
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return "", false, errors.Wrap(err, "highlighting response body")
	}
	return b.String(), true, nil
}
