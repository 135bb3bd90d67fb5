package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func UserNotFound(name string) *Error {
	return New(http.StatusNotFound, "user_not_found", fmt.Errorf("user %q could not be found", name))
}

func UserIDNotFound(id string) *Error {
	return New(http.StatusNotFound, "user_not_found", fmt.Errorf("user with id %s could not be found", id))
}

func QuestNotFound(id string) *Error {
	return New(http.StatusNotFound, "quest_not_found", fmt.Errorf("quest with id %s could not be found", id))
}

func BadgeNotFound(id string) *Error {
	return New(http.StatusNotFound, "badge_not_found", fmt.Errorf("badge with id %s could not be found", id))
}

func UserQuestNotFound(username, questID string) *Error {
	return New(http.StatusNotFound, "user_quest_not_found", fmt.Errorf("user quest for user %q and quest %s not found", username, questID))
}

func UserBadgeNotFound(username, badgeID string) *Error {
	return New(http.StatusNotFound, "user_badge_not_found", fmt.Errorf("user badge for user %q and badge %s not found", username, badgeID))
}

func DuplicateEmail(email string) *Error {
	return New(http.StatusBadRequest, "duplicate_email", fmt.Errorf("user with email %q already exists", email))
}

func DuplicateName(name string) *Error {
	return New(http.StatusBadRequest, "duplicate_name", fmt.Errorf("user with name %q already exists", name))
}

func DuplicateQuest(title string) *Error {
	return New(http.StatusBadRequest, "duplicate_quest", fmt.Errorf("quest with title %q already exists", title))
}

// DuplicateQuestConflict is the 409 variant used by token-gated quest
// creation, where a title collision is a conflict rather than bad input.
func DuplicateQuestConflict(title string) *Error {
	return New(http.StatusConflict, "duplicate_quest", fmt.Errorf("quest with title %q already exists", title))
}

func DuplicateBadge(name string) *Error {
	return New(http.StatusBadRequest, "duplicate_badge", fmt.Errorf("badge with name %q already exists", name))
}

func DuplicateUserQuest(username, questID string) *Error {
	return New(http.StatusBadRequest, "duplicate_user_quest", fmt.Errorf("quest %s is already assigned to user %q", questID, username))
}

func DuplicateUserBadge(username, badgeID string) *Error {
	return New(http.StatusBadRequest, "duplicate_user_badge", fmt.Errorf("user %q already holds badge %s", username, badgeID))
}

func InsufficientTokens(have, need int) *Error {
	return New(http.StatusBadRequest, "insufficient_tokens", fmt.Errorf("insufficient tokens: have %d, need %d", have, need))
}

func InvalidArgument(msg string) *Error {
	return New(http.StatusBadRequest, "invalid_argument", fmt.Errorf("%s", msg))
}

// DeletionFailed covers the store reporting zero rows removed for a row
// that was just confirmed to exist.
func DeletionFailed(entity, id string) *Error {
	return New(http.StatusBadRequest, "deletion_failed", fmt.Errorf("failed to delete %s with id %s", entity, id))
}
