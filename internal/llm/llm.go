// Package llm provides language-model backends used to generate
// grounded answers.
package llm

// Options are the sampling parameters passed to a generation backend.
type Options struct {
	Temperature float64
	TopP        float64
	NumPredict  int
}
