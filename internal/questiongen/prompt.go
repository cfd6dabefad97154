package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `あなたは日本の無人航空機操縦士試験(CBT)の問題作成者です。

ルール:
- 指定された等級と章の出題範囲に沿った三肢択一問題を作成してください。
- 問題文は自己完結しており、図表を参照しないこと。
- 選択肢は "1", "2", "3" の3つで、正解はそのうち1つだけにすること。
- 誤答の選択肢は受験者が実際に混同しやすい内容にすること。
- 解説では正解の根拠を簡潔に述べること。航空法や関連規則に基づく場合は条文の趣旨に触れること。
- 「既出の問題」リストにある問題と同じ、または言い換えただけの問題を作らないこと。
- 出力はすべて日本語で書くこと。`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "等級: %s\n", input.Level)
	fmt.Fprintf(&b, "章: 第%d章\n", input.Chapter)
	if input.Scope != "" {
		fmt.Fprintf(&b, "出題範囲: %s\n", input.Scope)
	}
	fmt.Fprintf(&b, "作成する問題数: %d\n", cfg.BatchSize)

	b.WriteString("\n既出の問題:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxExisting))

	return b.String()
}
