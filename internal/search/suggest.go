// Package search keeps an in-memory full-text index of the teasers a run has
// seen, so a miss can point at the closest headlines instead.
package search

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

// Suggestion is a seen teaser ranked against a query.
type Suggestion struct {
	Text  string
	Score float64
}

// Suggester indexes teaser texts. It never touches disk.
type Suggester struct {
	idx   bleve.Index
	count int
}

func NewSuggester() (*Suggester, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}
	return &Suggester{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()
	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	text.Store = true
	dm.AddFieldMappingsAt("text", text)

	im.DefaultMapping = dm
	return im
}

// AddAll indexes texts in one batch. Order is kept as the document id so
// equal scores still rank earlier teasers first.
func (s *Suggester) AddAll(texts []string) error {
	batch := s.idx.NewBatch()
	for _, t := range texts {
		// Teasers often span several lines (label, headline, date).
		flat := strings.Join(strings.Fields(t), " ")
		if flat == "" {
			continue
		}
		if err := batch.Index(fmt.Sprintf("teaser:%06d", s.count), map[string]any{"text": flat}); err != nil {
			return err
		}
		s.count++
	}
	return s.idx.Batch(batch)
}

// Suggest returns up to limit indexed texts that share terms with query,
// best first.
func (s *Suggester) Suggest(query string, limit int) ([]Suggestion, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return []Suggestion{}, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qm := bleve.NewMatchQuery(tok)
		qm.SetField("text")
		qm.SetBoost(2.0)
		qs = append(qs, qm)

		qp := bleve.NewPrefixQuery(tok)
		qp.SetField("text")
		qp.SetBoost(1.0)
		qs = append(qs, qp)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"text"}
	req.SortBy([]string{"-_score", "_id"})

	res, err := s.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(res.Hits))
	for _, h := range res.Hits {
		text, _ := h.Fields["text"].(string)
		out = append(out, Suggestion{Text: text, Score: h.Score})
	}
	return out, nil
}

// DocCount reports how many teasers are indexed.
func (s *Suggester) DocCount() (int, error) {
	n, err := s.idx.DocCount()
	return int(n), err
}

func (s *Suggester) Close() error {
	return s.idx.Close()
}

// tokenize lower-cases query and splits it on anything that is not a letter
// or digit, dropping single-character terms.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	flush := func() {
		if term := current.String(); utf8.RuneCountInString(term) > 1 {
			terms = append(terms, term)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			flush()
		}
	}
	flush()

	return terms
}
