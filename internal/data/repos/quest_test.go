package repos

import (
	"context"
	"testing"

	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos/testutil"
	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
)

func TestQuestRepoCreateAndGetByTitle(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQuestRepo(db, testutil.Log(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &domain.Quest{
		Title:        "Morning Run",
		Description:  "Run 5 km before 9am.",
		RewardPoints: domain.DefaultRewardPoints,
		RewardTokens: domain.DefaultRewardTokens,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByTitle(ctx, nil, "Morning Run")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetByTitle returned %+v, expected id %s", got, created.ID)
	}

	missing, err := repo.GetByTitle(ctx, nil, "No Such Quest")
	if err != nil {
		t.Fatalf("GetByTitle missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown title, got %+v", missing)
	}
}

func TestQuestRepoSortedLists(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQuestRepo(db, testutil.Log(t))
	ctx := context.Background()

	testutil.CreateQuest(t, db, "Cycling", 80, 5)
	testutil.CreateQuest(t, db, "Athletics", 10, 25)
	testutil.CreateQuest(t, db, "Bouldering", 40, 15)

	alpha, err := repo.ListAlphabetical(ctx, nil)
	if err != nil {
		t.Fatalf("ListAlphabetical: %v", err)
	}
	if len(alpha) != 3 || alpha[0].Title != "Athletics" || alpha[2].Title != "Cycling" {
		t.Fatalf("alphabetical order wrong: %v", titles(alpha))
	}

	byPoints, err := repo.ListByRewardPointsDesc(ctx, nil)
	if err != nil {
		t.Fatalf("ListByRewardPointsDesc: %v", err)
	}
	if byPoints[0].Title != "Cycling" || byPoints[2].Title != "Athletics" {
		t.Fatalf("reward points order wrong: %v", titles(byPoints))
	}

	byTokens, err := repo.ListByRewardTokensDesc(ctx, nil)
	if err != nil {
		t.Fatalf("ListByRewardTokensDesc: %v", err)
	}
	if byTokens[0].Title != "Athletics" || byTokens[2].Title != "Cycling" {
		t.Fatalf("reward tokens order wrong: %v", titles(byTokens))
	}
}

func titles(quests []*domain.Quest) []string {
	out := make([]string, 0, len(quests))
	for _, q := range quests {
		out = append(out, q.Title)
	}
	return out
}
