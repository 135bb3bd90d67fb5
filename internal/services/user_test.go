package services

import (
	"testing"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
)

func TestClampReward(t *testing.T) {
	tests := []struct {
		name  string
		value int
		def   int
		max   int
		want  int
	}{
		{"zero takes default", 0, domain.DefaultRewardPoints, domain.MaxUserQuestRewardPoints, domain.DefaultRewardPoints},
		{"within range untouched", 50, domain.DefaultRewardPoints, domain.MaxUserQuestRewardPoints, 50},
		{"at max untouched", 100, domain.DefaultRewardPoints, domain.MaxUserQuestRewardPoints, 100},
		{"above max clamped", 500, domain.DefaultRewardPoints, domain.MaxUserQuestRewardPoints, 100},
		{"tokens above max clamped", 50, domain.DefaultRewardTokens, domain.MaxUserQuestRewardTokens, 25},
		{"tokens zero takes default", 0, domain.DefaultRewardTokens, domain.MaxUserQuestRewardTokens, domain.DefaultRewardTokens},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampReward(tc.value, tc.def, tc.max); got != tc.want {
				t.Fatalf("clampReward(%d, %d, %d) = %d, expected %d", tc.value, tc.def, tc.max, got, tc.want)
			}
		})
	}
}
