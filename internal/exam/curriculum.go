package exam

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/abhisek/dronecbt/internal/bank"
)

// OtherChapter is the bucket for records whose chapter tag carries no
// parseable chapter number.
const OtherChapter = 0

var chapterNumRe = regexp.MustCompile(`第(\d+)章`)

// ChapterNum extracts the numeric chapter identifier from a chapter tag
// like "第4章 機体の仕組み". Unparseable tags map to OtherChapter.
func ChapterNum(tag string) int {
	m := chapterNumRe.FindStringSubmatch(tag)
	if m == nil {
		return OtherChapter
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return OtherChapter
	}
	return n
}

// ChapterLabel renders the canonical short label for a chapter number.
func ChapterLabel(num int) string {
	if num == OtherChapter {
		return "その他"
	}
	return fmt.Sprintf("第%d章", num)
}

// Curriculum describes one certification level's exam shape: the time
// budget, the nominal question total, and the per-chapter question counts.
type Curriculum struct {
	Level     string
	TimeLimit time.Duration
	Total     int
	// Weights maps chapter number to question count. The sum of the
	// weights is the nominal exam length.
	Weights map[int]int
	// Scope is the syllabus instruction handed to the question generator.
	Scope string
}

// Built-in defaults per certification tier. Overridable through the
// config file.
var defaultCurricula = map[string]Curriculum{
	bank.LevelBasic: {
		Level:     bank.LevelBasic,
		TimeLimit: 30 * time.Minute,
		Total:     50,
		Weights:   map[int]int{2: 3, 3: 17, 4: 15, 5: 7, 6: 8},
		Scope:     "二等無人航空機操縦士の学科試験の範囲",
	},
	bank.LevelAdvanced: {
		Level:     bank.LevelAdvanced,
		TimeLimit: 75 * time.Minute,
		Total:     70,
		Weights:   map[int]int{2: 4, 3: 24, 4: 20, 5: 10, 6: 12},
		Scope:     "一等無人航空機操縦士の学科試験の範囲（二等より高度な内容を含む）",
	},
}

// DefaultCurriculum returns the built-in curriculum for a level.
func DefaultCurriculum(level string) (Curriculum, error) {
	c, ok := defaultCurricula[level]
	if !ok {
		return Curriculum{}, fmt.Errorf("unknown level %q", level)
	}
	// Copy the weight map so callers can override without mutating the default.
	w := make(map[int]int, len(c.Weights))
	for k, v := range c.Weights {
		w[k] = v
	}
	c.Weights = w
	return c, nil
}

// Levels lists the known certification levels in display order.
func Levels() []string {
	return []string{bank.LevelBasic, bank.LevelAdvanced}
}
