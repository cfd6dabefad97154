package questiongen

import "context"

// Generator produces exam questions using an LLM provider.
type Generator interface {
	// Generate produces a batch of questions for the given input context.
	// Every returned question has passed the configured validator chain.
	Generate(ctx context.Context, input GenerateInput) (*Batch, error)
}
