package retrieval

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ErrEmptyCorpus is returned when an index is built over no usable text.
var ErrEmptyCorpus = errors.New("retrieval corpus is empty")

// LexicalIndex scores chunks by token overlap weighted with inverse document
// frequency. It is the built-in retrieval capability: no model downloads, no
// network, deterministic ranking.
type LexicalIndex struct {
	chunks []indexedChunk
	df     map[string]int
}

type indexedChunk struct {
	text   string
	tf     map[string]int
	length float64
}

// NewLexicalIndex tokenizes and indexes the given chunks.
func NewLexicalIndex(chunks []string) (*LexicalIndex, error) {
	idx := &LexicalIndex{df: make(map[string]int)}
	for _, text := range chunks {
		tf := termFrequencies(text)
		if len(tf) == 0 {
			continue
		}
		length := 0.0
		for _, n := range tf {
			length += float64(n * n)
		}
		idx.chunks = append(idx.chunks, indexedChunk{
			text:   text,
			tf:     tf,
			length: math.Sqrt(length),
		})
		for term := range tf {
			idx.df[term]++
		}
	}
	if len(idx.chunks) == 0 {
		return nil, ErrEmptyCorpus
	}
	return idx, nil
}

// Len reports how many chunks were indexed.
func (idx *LexicalIndex) Len() int { return len(idx.chunks) }

// Retrieve returns up to k chunks ranked by descending relevance. Chunks
// with no overlap are omitted, so fewer than k results is normal.
func (idx *LexicalIndex) Retrieve(ctx context.Context, query string, k int) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultTopK
	}

	queryTF := termFrequencies(query)
	if len(queryTF) == 0 {
		return nil, nil
	}

	total := float64(len(idx.chunks))
	scored := make([]Chunk, 0, len(idx.chunks))
	for _, c := range idx.chunks {
		score := 0.0
		for term, qn := range queryTF {
			cn, ok := c.tf[term]
			if !ok {
				continue
			}
			idf := math.Log(1 + total/float64(idx.df[term]))
			score += float64(qn) * float64(cn) * idf * idf
		}
		if score <= 0 {
			continue
		}
		scored = append(scored, Chunk{Text: c.text, Score: score / c.length})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, tok := range tokenize(text) {
		tf[tok]++
	}
	return tf
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"for": true, "to": true, "in": true, "on": true, "with": true, "is": true,
	"are": true, "i": true, "my": true, "your": true, "what": true, "which": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}
