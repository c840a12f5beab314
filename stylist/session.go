package stylist

import (
	"context"
	"errors"
	"fmt"

	"wardrobeapi/models"
)

var ErrNothingToLike = errors.New("no outfit is being shown")

type State int

const (
	StateConfiguring State = iota
	StateShowing
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateShowing:
		return "showing"
	}
	return "unknown"
}

const likedRating = 5

// Request is what the user picked before generating.
type Request struct {
	Occasion models.Occasion `json:"occasion"`
	Mood     string          `json:"mood"`
	Hint     string          `json:"hint"`
}

type HistoryAppender interface {
	AppendOutfit(ctx context.Context, outfit models.Outfit) error
}

// Session drives the generate / re-roll / like / dislike loop for one user.
// It is not safe for concurrent use.
type Session struct {
	assembler *Assembler
	history   HistoryAppender
	userID    uint

	state   State
	request Request
	current *models.Outfit
	lastErr error
}

func NewSession(assembler *Assembler, history HistoryAppender, userID uint) *Session {
	return &Session{assembler: assembler, history: history, userID: userID, state: StateConfiguring}
}

// Resume rebuilds a session that is already showing the given proposal.
func Resume(assembler *Assembler, history HistoryAppender, userID uint, request Request, current *models.Outfit) *Session {
	s := NewSession(assembler, history, userID)
	s.request = request
	s.current = current
	s.state = StateShowing
	return s
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Request() Request {
	return s.request
}

// Current is the outfit on screen, nil while configuring or after a failed generation.
func (s *Session) Current() *models.Outfit {
	return s.current
}

// Err is the failure of the last generation, if any.
func (s *Session) Err() error {
	return s.lastErr
}

// Configure goes back to picking occasion, mood and hint.
func (s *Session) Configure(request Request) {
	s.request = request
	s.current = nil
	s.lastErr = nil
	s.state = StateConfiguring
}

// Generate shows a fresh proposal for the configured request. A failed
// generation still moves to the showing state with no outfit.
func (s *Session) Generate(wardrobe []models.ClothingItem) (*models.Outfit, error) {
	outfit, err := s.assembler.Generate(wardrobe, s.request.Occasion, s.request.Mood, s.request.Hint)
	s.state = StateShowing
	s.current = outfit
	s.lastErr = err
	if err != nil {
		return nil, err
	}
	outfit.UserID = s.userID
	return outfit, nil
}

func (s *Session) Reroll(wardrobe []models.ClothingItem) (*models.Outfit, error) {
	return s.Generate(wardrobe)
}

func (s *Session) Dislike(wardrobe []models.ClothingItem) (*models.Outfit, error) {
	return s.Generate(wardrobe)
}

// Like saves the outfit on screen as liked with the top rating and moves on
// to the next proposal. The saved outfit is returned with the new one.
func (s *Session) Like(ctx context.Context, wardrobe []models.ClothingItem) (saved *models.Outfit, next *models.Outfit, err error) {
	if s.state != StateShowing || s.current == nil {
		return nil, nil, ErrNothingToLike
	}
	liked := *s.current
	liked.UserID = s.userID
	isLiked, rating := true, likedRating
	liked.Liked = &isLiked
	liked.Rating = &rating
	if err := s.history.AppendOutfit(ctx, liked); err != nil {
		return nil, nil, fmt.Errorf("save liked outfit %s: %w", liked.ID, err)
	}
	next, err = s.Generate(wardrobe)
	return &liked, next, err
}
