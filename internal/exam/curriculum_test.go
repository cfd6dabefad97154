package exam

import (
	"testing"

	"github.com/abhisek/dronecbt/internal/bank"
)

func TestDefaultCurriculumWeightsSumToTotal(t *testing.T) {
	for _, level := range Levels() {
		c, err := DefaultCurriculum(level)
		if err != nil {
			t.Fatalf("DefaultCurriculum(%s): %v", level, err)
		}
		sum := 0
		for _, w := range c.Weights {
			sum += w
		}
		if sum != c.Total {
			t.Errorf("%s: weights sum %d != total %d", level, sum, c.Total)
		}
	}
}

func TestDefaultCurriculumShapes(t *testing.T) {
	basic, _ := DefaultCurriculum(bank.LevelBasic)
	if basic.Total != 50 || basic.TimeLimit.Minutes() != 30 {
		t.Errorf("basic = %d questions / %v", basic.Total, basic.TimeLimit)
	}
	advanced, _ := DefaultCurriculum(bank.LevelAdvanced)
	if advanced.Total != 70 || advanced.TimeLimit.Minutes() != 75 {
		t.Errorf("advanced = %d questions / %v", advanced.Total, advanced.TimeLimit)
	}
	if _, err := DefaultCurriculum("三等"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestDefaultCurriculumCopiesWeights(t *testing.T) {
	a, _ := DefaultCurriculum(bank.LevelBasic)
	a.Weights[2] = 99
	b, _ := DefaultCurriculum(bank.LevelBasic)
	if b.Weights[2] == 99 {
		t.Error("mutating a returned curriculum leaked into the defaults")
	}
}
