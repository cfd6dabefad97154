package exam

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/dronecbt/internal/bank"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// poolFor builds count questions tagged with the given chapter number.
func poolFor(chapter, count int) []bank.Question {
	out := make([]bank.Question, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, bank.Question{
			ID:      i + 1,
			Level:   bank.LevelBasic,
			Chapter: fmt.Sprintf("第%d章 テーマ", chapter),
			Text:    fmt.Sprintf("ch%d-q%d", chapter, i),
			Options: map[string]string{"1": "a", "2": "b", "3": "c"},
			Answer:  "1",
		})
	}
	return out
}

func countByChapter(qs []bank.Question) map[int]int {
	out := make(map[int]int)
	for _, q := range qs {
		out[ChapterNum(q.Chapter)]++
	}
	return out
}

func TestSelectExamSetExactWeights(t *testing.T) {
	// Basic-tier shape: 3/17/15/7/8 per chapter, pool stocked exactly.
	weights := map[int]int{2: 3, 3: 17, 4: 15, 5: 7, 6: 8}
	var pool []bank.Question
	for ch, n := range weights {
		pool = append(pool, poolFor(ch, n)...)
	}

	got := SelectExamSet(pool, 50, weights, testRNG())
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	counts := countByChapter(got)
	for ch, want := range weights {
		if counts[ch] != want {
			t.Errorf("chapter %d count = %d, want %d", ch, counts[ch], want)
		}
	}
}

func TestSelectExamSetWeightRespectWithSurplus(t *testing.T) {
	weights := map[int]int{2: 3, 3: 5}
	var pool []bank.Question
	pool = append(pool, poolFor(2, 10)...)
	pool = append(pool, poolFor(3, 10)...)

	got := SelectExamSet(pool, 8, weights, testRNG())
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	counts := countByChapter(got)
	if counts[2] != 3 || counts[3] != 5 {
		t.Errorf("counts = %v, want map[2:3 3:5]", counts)
	}
}

func TestSelectExamSetShortfallRedistribution(t *testing.T) {
	// Chapter 2 is under-stocked by 4; chapter 3 has surplus to cover it.
	weights := map[int]int{2: 5, 3: 5}
	var pool []bank.Question
	pool = append(pool, poolFor(2, 1)...)
	pool = append(pool, poolFor(3, 20)...)

	got := SelectExamSet(pool, 10, weights, testRNG())
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	counts := countByChapter(got)
	if counts[2] != 1 {
		t.Errorf("chapter 2 count = %d, want 1 (full stock)", counts[2])
	}
	if counts[3] != 9 {
		t.Errorf("chapter 3 count = %d, want 9 (5 weighted + 4 shortfall)", counts[3])
	}
}

func TestSelectExamSetTotalBound(t *testing.T) {
	weights := map[int]int{2: 5, 3: 5}
	pool := poolFor(2, 3) // far less than requested

	got := SelectExamSet(pool, 10, weights, testRNG())
	if len(got) != 3 {
		t.Errorf("len = %d, want 3 (partial stock is returned, not an error)", len(got))
	}

	if got := SelectExamSet(nil, 10, weights, testRNG()); len(got) != 0 {
		t.Errorf("empty pool returned %d records", len(got))
	}
}

func TestSelectExamSetNoDuplicates(t *testing.T) {
	weights := map[int]int{2: 5, 3: 5}
	var pool []bank.Question
	pool = append(pool, poolFor(2, 3)...)
	pool = append(pool, poolFor(3, 12)...)

	got := SelectExamSet(pool, 10, weights, testRNG())
	seen := make(map[string]bool)
	for _, q := range got {
		if seen[q.Text] {
			t.Errorf("question %q drawn twice", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestSelectExamSetNoWeights(t *testing.T) {
	pool := poolFor(2, 10)

	got := SelectExamSet(pool, 4, nil, testRNG())
	if len(got) != 4 {
		t.Errorf("uniform sample len = %d, want 4", len(got))
	}

	got = SelectExamSet(pool, 20, nil, testRNG())
	if len(got) != 10 {
		t.Errorf("small pool len = %d, want all 10", len(got))
	}
}

func TestSelectExamSetUnparseableChapters(t *testing.T) {
	// Records without a 第N章 tag land in the "other" bucket and are only
	// reachable through the shortfall pass.
	weights := map[int]int{2: 2}
	pool := poolFor(2, 2)
	pool = append(pool, bank.Question{
		ID: 99, Chapter: "補足資料", Text: "other-q",
		Options: map[string]string{"1": "a", "2": "b", "3": "c"}, Answer: "1",
	})

	got := SelectExamSet(pool, 3, weights, testRNG())
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if counts := countByChapter(got); counts[OtherChapter] != 1 {
		t.Errorf("other bucket count = %d, want 1", counts[OtherChapter])
	}
}

func TestChapterNum(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"第2章 無人航空機に関する規則", 2},
		{"第10章", 10},
		{"規則 第3章", 3},
		{"補足", OtherChapter},
		{"", OtherChapter},
	}
	for _, tt := range tests {
		if got := ChapterNum(tt.tag); got != tt.want {
			t.Errorf("ChapterNum(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}
