package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is one raw LLM question before validation.
type questionOutput struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}

// batchOutput is the raw LLM response envelope.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate produces a batch of questions for the given input context.
// Questions that fail validation are dropped from the batch; the batch
// errors only when every question fails or the provider call fails.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Batch, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if input.Attachment != nil {
		req.Attachment = &llm.Attachment{
			MIMEType: input.Attachment.MIMEType,
			Data:     input.Attachment.Data,
		}
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, &ValidationError{
			Validator: "batch",
			Message:   "response contains no questions",
			Retryable: true,
		}
	}

	chapter := exam.ChapterLabel(input.Chapter)

	var batch Batch
	var lastErr *ValidationError
	for _, out := range raw.Questions {
		q := bank.Question{
			Level:       input.Level,
			Chapter:     chapter,
			Text:        out.Question,
			Options:     out.Options,
			Answer:      out.Answer,
			Explanation: out.Explanation,
		}
		if verr := g.validate(&q, input); verr != nil {
			lastErr = verr
			continue
		}
		batch.Questions = append(batch.Questions, q)
	}
	if len(batch.Questions) == 0 {
		return nil, lastErr
	}

	return &batch, nil
}

func (g *LLMGenerator) validate(q *bank.Question, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}
