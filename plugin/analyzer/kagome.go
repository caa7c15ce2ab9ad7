package analyzer

import (
	"context"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/dict"
	ko "github.com/ikawaha/kagome-dict-ko"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/pkg/errors"
)

// unknownPos tags tokens the dictionary could not analyze.
const unknownPos = "NA"

type kagomeAnalyzer struct {
	tokenizer *tokenizer.Tokenizer
}

// NewKagome builds an analyzer on the Korean mecab-ko-dic system dictionary,
// extended with the entries of the user dictionary file.
func NewKagome(userDictPath string) (Analyzer, error) {
	entries, err := ReadUserDict(userDictPath)
	if err != nil {
		return nil, err
	}

	opts := []tokenizer.Option{tokenizer.OmitBosEos()}
	if len(entries) > 0 {
		records, err := dict.NewUserDicRecords(strings.NewReader(kagomeUserDictCSV(entries)))
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse user dictionary")
		}
		userDict, err := records.NewUserDict()
		if err != nil {
			return nil, errors.Wrap(err, "failed to build user dictionary")
		}
		opts = append(opts, tokenizer.UserDict(userDict))
	}

	t, err := tokenizer.New(ko.Dict(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tokenizer")
	}
	return &kagomeAnalyzer{tokenizer: t}, nil
}

func (a *kagomeAnalyzer) Analyze(ctx context.Context, text string) ([]Morpheme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	morphemes := []Morpheme{}
	for _, token := range a.tokenizer.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		morphemes = append(morphemes, Morpheme{
			Surface: token.Surface,
			Pos:     tokenPos(token),
		})
	}
	return morphemes, nil
}

func tokenPos(token tokenizer.Token) string {
	if token.Class == tokenizer.UNKNOWN && isHangul(token.Surface) {
		return unknownPos
	}
	features := token.POS()
	if len(features) == 0 || features[0] == "" || features[0] == "*" {
		return unknownPos
	}
	return features[0]
}

func isHangul(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Hangul, r) {
			return false
		}
	}
	return s != ""
}

// kagomeUserDictCSV renders entries as "text,segments,readings,pos" lines.
func kagomeUserDictCSV(entries []Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		keyword := strings.NewReplacer(",", "", " ", "", "\"", "").Replace(entry.Keyword)
		if keyword == "" {
			continue
		}
		pos := entry.Pos
		if pos == "" {
			pos = DefaultPos
		}
		b.WriteString(keyword + "," + keyword + "," + keyword + "," + pos + "\n")
	}
	return b.String()
}
