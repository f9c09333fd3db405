// Package chunker splits normalized text into overlapping word windows, the
// unit of embedding and retrieval.
package chunker

import (
	"fmt"
	"iter"
	"strings"
)

type Chunker struct {
	window  int
	overlap int
}

// New validates the geometry up front: overlap must leave a positive
// advance step or chunking would never terminate.
func New(window, overlap int) (*Chunker, error) {
	if window <= 0 {
		return nil, fmt.Errorf("chunk window must be positive, got %d", window)
	}
	if overlap < 0 || overlap >= window {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, window %d)", overlap, window)
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// Windows yields (index, chunk) pairs lazily. The sequence is finite,
// restartable, and deterministic for a given input. Boundaries are counted
// in whitespace-delimited words; the final window may run short.
func (c *Chunker) Windows(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		words := strings.Fields(text)
		step := c.window - c.overlap
		index := 0
		for start := 0; start < len(words); start += step {
			end := min(start+c.window, len(words))
			if !yield(index, strings.Join(words[start:end], " ")) {
				return
			}
			index++
			if end == len(words) {
				return
			}
		}
	}
}

// Split materializes the window sequence.
func (c *Chunker) Split(text string) []string {
	var chunks []string
	for _, chunk := range c.Windows(text) {
		chunks = append(chunks, chunk)
	}
	return chunks
}
