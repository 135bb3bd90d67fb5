package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos"
	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos/testutil"
	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/apierr"
)

type testServices struct {
	db    *gorm.DB
	quest QuestService
	user  UserService
	badge BadgeService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Log(t)

	userRepo := repos.NewUserRepo(db, log)
	questRepo := repos.NewQuestRepo(db, log)
	badgeRepo := repos.NewBadgeRepo(db, log)
	userQuestRepo := repos.NewUserQuestRepo(db, log)
	userBadgeRepo := repos.NewUserBadgeRepo(db, log)

	return &testServices{
		db:    db,
		quest: NewQuestService(db, log, questRepo, userRepo, userQuestRepo, badgeRepo, userBadgeRepo, nil),
		user:  NewUserService(db, log, userRepo, questRepo, badgeRepo, userQuestRepo, userBadgeRepo, nil, 10),
		badge: NewBadgeService(db, log, badgeRepo, userRepo, userBadgeRepo),
	}
}

func (ts *testServices) userByName(t *testing.T, name string) *domain.User {
	t.Helper()
	var user domain.User
	if err := ts.db.Where("name = ?", name).First(&user).Error; err != nil {
		t.Fatalf("loading user %q: %v", name, err)
	}
	return &user
}

func apiErrOf(t *testing.T, err error) *apierr.Error {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %v", err)
	}
	return apiErr
}

func TestCompleteUserQuestFirstTime(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.SeedBadges(t, ts.db)
	alice := testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	q1 := testutil.CreateQuest(t, ts.db, "Q1", 20, 15)
	testutil.AssignQuest(t, ts.db, alice, q1)

	userQuest, err := ts.quest.CompleteUserQuest(ctx, "alice", q1.ID, "https://img.example.com/p.jpg")
	if err != nil {
		t.Fatalf("CompleteUserQuest: %v", err)
	}
	if userQuest.Status != domain.UserQuestStatusCompleted {
		t.Fatalf("status = %q, expected Completed", userQuest.Status)
	}

	got := ts.userByName(t, "alice")
	if got.Points != 20 || got.Tokens != 115 {
		t.Fatalf("balance = (%d, %d), expected (20, 115)", got.Points, got.Tokens)
	}

	badges, err := ts.user.GetUserBadgesByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserBadgesByName: %v", err)
	}
	if len(badges) != 1 || badges[0].Name != "First Quest" {
		t.Fatalf("expected only the First Quest badge, got %v", badgeNames(badges))
	}
}

func TestCompleteUserQuestIdempotent(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.SeedBadges(t, ts.db)
	alice := testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	q1 := testutil.CreateQuest(t, ts.db, "Q1", 20, 15)
	testutil.AssignQuest(t, ts.db, alice, q1)

	if _, err := ts.quest.CompleteUserQuest(ctx, "alice", q1.ID, "proof-a"); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	second, err := ts.quest.CompleteUserQuest(ctx, "alice", q1.ID, "proof-b")
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if second.Status != domain.UserQuestStatusCompleted {
		t.Fatalf("status = %q, expected Completed", second.Status)
	}
	if second.ProofImage != "proof-a" {
		t.Fatalf("proof image = %q, expected the original %q", second.ProofImage, "proof-a")
	}

	got := ts.userByName(t, "alice")
	if got.Points != 20 || got.Tokens != 115 {
		t.Fatalf("balance = (%d, %d), expected single credit (20, 115)", got.Points, got.Tokens)
	}
}

func TestDeleteUserQuestReversesBalanceKeepsBadges(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.SeedBadges(t, ts.db)
	testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	q1 := testutil.CreateQuest(t, ts.db, "Q1", 20, 15)

	if _, err := ts.user.AssignQuestToUser(ctx, "alice", q1.ID); err != nil {
		t.Fatalf("AssignQuestToUser: %v", err)
	}
	if _, err := ts.quest.CompleteUserQuest(ctx, "alice", q1.ID, "proof"); err != nil {
		t.Fatalf("CompleteUserQuest: %v", err)
	}
	if _, err := ts.quest.DeleteUserQuest(ctx, "alice", q1.ID); err != nil {
		t.Fatalf("DeleteUserQuest: %v", err)
	}

	got := ts.userByName(t, "alice")
	if got.Points != 0 || got.Tokens != domain.DefaultUserTokens {
		t.Fatalf("balance = (%d, %d), expected pre-assignment (0, %d)", got.Points, got.Tokens, domain.DefaultUserTokens)
	}

	badges, err := ts.user.GetUserBadgesByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserBadgesByName: %v", err)
	}
	if len(badges) != 1 || badges[0].Name != "First Quest" {
		t.Fatalf("expected First Quest badge to survive deletion, got %v", badgeNames(badges))
	}
}

func TestCompleteUserQuestAwardsHighestPointsTierOnly(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.SeedBadges(t, ts.db)
	alice := testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	big := testutil.CreateQuest(t, ts.db, "Jackpot", 15000, 0)
	testutil.AssignQuest(t, ts.db, alice, big)

	if _, err := ts.quest.CompleteUserQuest(ctx, "alice", big.ID, ""); err != nil {
		t.Fatalf("CompleteUserQuest: %v", err)
	}

	badges, err := ts.user.GetUserBadgesByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserBadgesByName: %v", err)
	}
	names := badgeNames(badges)
	if len(names) != 2 {
		t.Fatalf("expected exactly First Quest and Point Legend, got %v", names)
	}
	want := map[string]bool{"First Quest": true, "Point Legend": true}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected badge %q in %v", n, names)
		}
	}
}

func TestBadgeCountProgression(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.SeedBadges(t, ts.db)
	alice := testutil.CreateUser(t, ts.db, "alice", "alice@example.com")

	for i := 0; i < 5; i++ {
		quest := testutil.CreateQuest(t, ts.db, "Quest "+string(rune('A'+i)), 10, 0)
		testutil.AssignQuest(t, ts.db, alice, quest)
		if _, err := ts.quest.CompleteUserQuest(ctx, "alice", quest.ID, ""); err != nil {
			t.Fatalf("completing quest %d: %v", i+1, err)
		}
	}

	badges, err := ts.user.GetUserBadgesByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserBadgesByName: %v", err)
	}
	names := badgeNames(badges)
	if len(names) != 2 {
		t.Fatalf("expected First Quest and Five Quests, got %v", names)
	}
	want := map[string]bool{"First Quest": true, "Five Quests": true}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected badge %q in %v", n, names)
		}
	}
}

func TestAssignQuestToUserDuplicate(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	q1 := testutil.CreateQuest(t, ts.db, "Q1", 20, 15)

	if _, err := ts.user.AssignQuestToUser(ctx, "alice", q1.ID); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	_, err := ts.user.AssignQuestToUser(ctx, "alice", q1.ID)
	if err == nil {
		t.Fatalf("expected duplicate assignment to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != "duplicate_user_quest" {
		t.Fatalf("code = %q, expected duplicate_user_quest", apiErr.Code)
	}
}

func TestCreateUserQuestTokenBoundary(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	poor := testutil.CreateUser(t, ts.db, "poor", "poor@example.com")
	rich := testutil.CreateUser(t, ts.db, "rich", "rich@example.com")
	if err := ts.db.Model(poor).Update("tokens", 19).Error; err != nil {
		t.Fatalf("setting tokens: %v", err)
	}
	if err := ts.db.Model(rich).Update("tokens", 20).Error; err != nil {
		t.Fatalf("setting tokens: %v", err)
	}

	_, err := ts.user.CreateUserQuest(ctx, "poor", QuestInput{Title: "Blocked", Description: "d"})
	if err == nil {
		t.Fatalf("expected InsufficientTokens at 19 tokens")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != "insufficient_tokens" {
		t.Fatalf("code = %q, expected insufficient_tokens", apiErr.Code)
	}

	quest, err := ts.user.CreateUserQuest(ctx, "rich", QuestInput{Title: "Allowed", Description: "d"})
	if err != nil {
		t.Fatalf("expected creation at 20 tokens, got %v", err)
	}
	if quest.RewardPoints != domain.DefaultRewardPoints || quest.RewardTokens != domain.DefaultRewardTokens {
		t.Fatalf("rewards = (%d, %d), expected defaults", quest.RewardPoints, quest.RewardTokens)
	}
	got := ts.userByName(t, "rich")
	if got.Tokens != 0 {
		t.Fatalf("tokens = %d, expected 0 after the fee", got.Tokens)
	}
}

func TestCreateUserQuestClampsRewards(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	if err := ts.db.Model(alice).Update("tokens", 25).Error; err != nil {
		t.Fatalf("setting tokens: %v", err)
	}

	quest, err := ts.user.CreateUserQuest(ctx, "alice", QuestInput{
		Title:        "New",
		Description:  "d",
		RewardPoints: 200,
		RewardTokens: 50,
	})
	if err != nil {
		t.Fatalf("CreateUserQuest: %v", err)
	}
	if quest.RewardPoints != domain.MaxUserQuestRewardPoints || quest.RewardTokens != domain.MaxUserQuestRewardTokens {
		t.Fatalf("rewards = (%d, %d), expected clamped (100, 25)", quest.RewardPoints, quest.RewardTokens)
	}

	got := ts.userByName(t, "alice")
	if got.Tokens != 5 {
		t.Fatalf("tokens = %d, expected 5 after the flat fee", got.Tokens)
	}
}

func TestCreateUserDuplicateChecks(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	if _, err := ts.user.CreateUser(ctx, UserInput{Name: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := ts.user.CreateUser(ctx, UserInput{Name: "other", Email: "alice@example.com"})
	if err == nil {
		t.Fatalf("expected duplicate email to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != "duplicate_email" {
		t.Fatalf("code = %q, expected duplicate_email", apiErr.Code)
	}

	_, err = ts.user.CreateUser(ctx, UserInput{Name: "alice", Email: "new@example.com"})
	if err == nil {
		t.Fatalf("expected duplicate name to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != "duplicate_name" {
		t.Fatalf("code = %q, expected duplicate_name", apiErr.Code)
	}
}

func TestProofImageLifecycle(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	testutil.SeedBadges(t, ts.db)
	alice := testutil.CreateUser(t, ts.db, "alice", "alice@example.com")
	q1 := testutil.CreateQuest(t, ts.db, "Q1", 20, 15)
	testutil.AssignQuest(t, ts.db, alice, q1)

	// Not completed yet: proof reads are not-found.
	if _, err := ts.quest.GetProofImageURL(ctx, "alice", q1.ID); err == nil {
		t.Fatalf("expected not-found before completion")
	} else if apiErr := apiErrOf(t, err); apiErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, expected 404", apiErr.Status)
	}

	if _, err := ts.quest.CompleteUserQuest(ctx, "alice", q1.ID, "https://img.example.com/p.jpg"); err != nil {
		t.Fatalf("CompleteUserQuest: %v", err)
	}

	url, err := ts.quest.GetProofImageURL(ctx, "alice", q1.ID)
	if err != nil {
		t.Fatalf("GetProofImageURL: %v", err)
	}
	if url != "https://img.example.com/p.jpg" {
		t.Fatalf("url = %q", url)
	}

	if _, err := ts.quest.DeleteProofImageURL(ctx, "alice", q1.ID); err != nil {
		t.Fatalf("DeleteProofImageURL: %v", err)
	}
	url, err = ts.quest.GetProofImageURL(ctx, "alice", q1.ID)
	if err != nil {
		t.Fatalf("GetProofImageURL after delete: %v", err)
	}
	if url != "" {
		t.Fatalf("expected cleared proof url, got %q", url)
	}
}

func badgeNames(badges []*domain.Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.Name)
	}
	return out
}
