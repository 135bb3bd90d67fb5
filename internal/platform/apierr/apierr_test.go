package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
		wantCode   string
	}{
		{"user not found", UserNotFound("alice"), http.StatusNotFound, "user_not_found"},
		{"quest not found", QuestNotFound("q1"), http.StatusNotFound, "quest_not_found"},
		{"badge not found", BadgeNotFound("b1"), http.StatusNotFound, "badge_not_found"},
		{"user quest not found", UserQuestNotFound("alice", "q1"), http.StatusNotFound, "user_quest_not_found"},
		{"user badge not found", UserBadgeNotFound("alice", "b1"), http.StatusNotFound, "user_badge_not_found"},
		{"duplicate email", DuplicateEmail("a@b.c"), http.StatusBadRequest, "duplicate_email"},
		{"duplicate name", DuplicateName("alice"), http.StatusBadRequest, "duplicate_name"},
		{"duplicate quest", DuplicateQuest("Run"), http.StatusBadRequest, "duplicate_quest"},
		{"duplicate quest conflict", DuplicateQuestConflict("Run"), http.StatusConflict, "duplicate_quest"},
		{"duplicate user quest", DuplicateUserQuest("alice", "q1"), http.StatusBadRequest, "duplicate_user_quest"},
		{"insufficient tokens", InsufficientTokens(19, 20), http.StatusBadRequest, "insufficient_tokens"},
		{"invalid argument", InvalidArgument("title cannot be empty"), http.StatusBadRequest, "invalid_argument"},
		{"deletion failed", DeletionFailed("quest", "q1"), http.StatusBadRequest, "deletion_failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.wantStatus {
				t.Fatalf("status = %d, expected %d", tc.err.Status, tc.wantStatus)
			}
			if tc.err.Code != tc.wantCode {
				t.Fatalf("code = %q, expected %q", tc.err.Code, tc.wantCode)
			}
			if tc.err.Error() == "" {
				t.Fatalf("expected non-empty message")
			}
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("completing quest: %w", UserNotFound("alice"))

	var apiErr *Error
	if !errors.As(wrapped, &apiErr) {
		t.Fatalf("expected errors.As to find *apierr.Error")
	}
	if apiErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, expected %d", apiErr.Status, http.StatusNotFound)
	}
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := New(http.StatusBadRequest, "x", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("expected errors.Is to match the wrapped error")
	}
}
