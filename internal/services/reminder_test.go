package services

import (
	"context"
	"testing"

	"github.com/marewang/final-bnn/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminderRepo struct {
	kgbMonths     int
	pangkatMonths int
}

func (f *fakeReminderRepo) DueKGBWithin(ctx context.Context, months int) ([]types.ASNReminder, error) {
	f.kgbMonths = months
	return []types.ASNReminder{{ID: 1, Nama: "Sari", NIP: "198001012005012001"}}, nil
}

func (f *fakeReminderRepo) DuePangkatWithin(ctx context.Context, months int) ([]types.ASNReminder, error) {
	f.pangkatMonths = months
	return nil, nil
}

func TestReminderServiceNormalizesWindow(t *testing.T) {
	repo := &fakeReminderRepo{}
	svc := NewReminderService(repo)

	got, err := svc.DueSoon(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Months)
	assert.Equal(t, 3, repo.kgbMonths)
	assert.Equal(t, 3, repo.pangkatMonths)

	got, err = svc.DueSoon(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Months)
	assert.Equal(t, 6, repo.kgbMonths)
}

func TestReminderServiceIndependentSelections(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{})

	got, err := svc.DueSoon(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got.KGB, 1)
	assert.Empty(t, got.Pangkat)
}
