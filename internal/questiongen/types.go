package questiongen

import "github.com/abhisek/dronecbt/internal/bank"

// GenerateInput holds all context needed to generate a batch of questions.
type GenerateInput struct {
	// Level is the license level the questions target ("二等" or "一等").
	Level string

	// Chapter is the syllabus chapter number the questions belong to.
	Chapter int

	// Scope describes the chapter's subject matter and is included in
	// the prompt so the model stays on topic.
	Scope string

	// Existing contains the text of questions already stored for this
	// chapter. Used for deduplication in the prompt.
	Existing []string

	// Attachment is an optional reference document (e.g. the official
	// syllabus PDF) sent alongside the prompt. Only supported by
	// providers that accept inline attachments.
	Attachment *Attachment
}

// Attachment is a reference document included with the generation request.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Batch is one round of generated questions, tagged with the chapter
// label they were generated for.
type Batch struct {
	Questions []bank.Question
}
