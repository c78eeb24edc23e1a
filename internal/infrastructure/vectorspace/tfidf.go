// Package vectorspace builds TF-IDF term-weighted vector spaces over small
// in-memory corpora. Nothing is persisted; a Model lives for one computation.
package vectorspace

import (
	"math"
	"sort"
)

// SparseVector keeps indices sorted ascending so every reduction over it runs
// in a fixed order and is reproducible bit for bit.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Sum adds up all weights of the vector.
func (v SparseVector) Sum() float64 {
	total := 0.0
	for _, value := range v.Values {
		total += value
	}
	return total
}

func (v SparseVector) IsZero() bool { return len(v.Indices) == 0 }

// Dot is the inner product of two sparse vectors. For L2-normalised vectors it
// equals cosine similarity.
func Dot(a, b SparseVector) float64 {
	total := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			total += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return total
}

type Option func(*Vectorizer)

// WithStopWords replaces the excluded vocabulary. A nil set keeps every term.
func WithStopWords(words map[string]struct{}) Option {
	return func(v *Vectorizer) { v.stopWords = words }
}

// WithoutStopWords keeps every token.
func WithoutStopWords() Option {
	return WithStopWords(nil)
}

// Vectorizer turns texts into smoothed TF-IDF vectors with L2 row normalisation.
type Vectorizer struct {
	stopWords map[string]struct{}
}

func NewVectorizer(opts ...Option) *Vectorizer {
	v := &Vectorizer{stopWords: englishStopWords}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Model is a fitted vocabulary with per-term inverse document frequencies.
type Model struct {
	vectorizer *Vectorizer
	vocabulary map[string]int
	idf        []float64
}

// Fit builds the vocabulary over corpus. An empty corpus or one without a
// single indexable term yields an empty model whose vectors are all zero.
func (v *Vectorizer) Fit(corpus []string) *Model {
	df := make(map[string]int, 64)
	for _, text := range corpus {
		seen := make(map[string]struct{}, 16)
		for _, term := range v.terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &Model{
		vectorizer: v,
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return m
}

// FitTransform fits corpus and returns one vector per input text, in order.
func (v *Vectorizer) FitTransform(corpus []string) (*Model, []SparseVector) {
	m := v.Fit(corpus)
	rows := make([]SparseVector, len(corpus))
	for i, text := range corpus {
		rows[i] = m.Transform(text)
	}
	return m, rows
}

// Size is the vocabulary size.
func (m *Model) Size() int { return len(m.idf) }

// Transform weights text against the fitted vocabulary. Terms outside the
// vocabulary are ignored.
func (m *Model) Transform(text string) SparseVector {
	counts := make(map[int]float64, 16)
	for _, term := range m.vectorizer.terms(text) {
		if idx, ok := m.vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	norm := 0.0
	for i, idx := range indices {
		w := counts[idx] * m.idf[idx]
		values[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range values {
			values[i] /= norm
		}
	}
	return SparseVector{Indices: indices, Values: values}
}

// HasTerms reports whether text contains at least one token that survives
// stop-word filtering.
func (v *Vectorizer) HasTerms(text string) bool {
	return len(v.terms(text)) > 0
}

func (v *Vectorizer) terms(text string) []string {
	tokens := tokenize(text)
	if len(v.stopWords) == 0 {
		return tokens
	}
	out := tokens[:0]
	for _, tok := range tokens {
		if _, stop := v.stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
