package services

import (
	"context"

	"github.com/marewang/final-bnn/internal/schedule"
	"github.com/marewang/final-bnn/types"
)

// ReminderRepository defines the two window selections backing the
// reminder views. KGB and Pangkat are independent result sets.
type ReminderRepository interface {
	DueKGBWithin(ctx context.Context, months int) ([]types.ASNReminder, error)
	DuePangkatWithin(ctx context.Context, months int) ([]types.ASNReminder, error)
}

// Reminders bundles the two due-soon listings for one lookahead window.
type Reminders struct {
	Months  int                 `json:"months"`
	KGB     []types.ASNReminder `json:"kgb"`
	Pangkat []types.ASNReminder `json:"pangkat"`
}

// ReminderService runs the due-soon selections.
type ReminderService struct {
	repo ReminderRepository
}

func NewReminderService(repo ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

// DueSoon returns the records whose KGB or Pangkat due date falls
// within the lookahead window. The requested months value is
// normalized to the permitted set before it reaches storage.
func (s *ReminderService) DueSoon(ctx context.Context, months int) (Reminders, error) {
	months = schedule.NormalizeWindow(months)

	kgb, err := s.repo.DueKGBWithin(ctx, months)
	if err != nil {
		return Reminders{}, err
	}
	pangkat, err := s.repo.DuePangkatWithin(ctx, months)
	if err != nil {
		return Reminders{}, err
	}

	return Reminders{Months: months, KGB: kgb, Pangkat: pangkat}, nil
}
