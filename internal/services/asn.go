package services

import (
	"context"

	"github.com/marewang/final-bnn/internal/schedule"
	"github.com/marewang/final-bnn/types"
)

// ASNRepository defines persistence operations for personnel records.
type ASNRepository interface {
	List(ctx context.Context, q string, offset, limit int) ([]types.ASN, int, error)
	Get(ctx context.Context, id int64) (types.ASN, error)
	Create(ctx context.Context, record types.ASN) (types.ASN, error)
	Update(ctx context.Context, record types.ASN) (types.ASN, error)
	Delete(ctx context.Context, id int64) error
}

// ASNService encapsulates personnel-record use-cases, including the
// due-date derivation applied on writes.
type ASNService struct {
	repo ASNRepository
}

func NewASNService(repo ASNRepository) *ASNService {
	return &ASNService{repo: repo}
}

func (s *ASNService) List(ctx context.Context, q string, offset, limit int) ([]types.ASN, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, q, offset, limit)
}

func (s *ASNService) Get(ctx context.Context, id int64) (types.ASN, error) {
	return s.repo.Get(ctx, id)
}

func (s *ASNService) Create(ctx context.Context, record types.ASN) (types.ASN, error) {
	applyDerivedDueDates(&record)
	return s.repo.Create(ctx, record)
}

func (s *ASNService) Update(ctx context.Context, record types.ASN) (types.ASN, error) {
	applyDerivedDueDates(&record)
	return s.repo.Update(ctx, record)
}

func (s *ASNService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// applyDerivedDueDates fills each empty due-date field from its
// historical date plus the fixed cycle. A due date supplied by the
// operator is an override and wins; clearing it while the historical
// date is present re-derives on the next save.
func applyDerivedDueDates(record *types.ASN) {
	if record.JadwalKGBBerikutnya == nil {
		record.JadwalKGBBerikutnya = schedule.NextDue(record.RiwayatTMTKGB, schedule.KGBOffsetYears)
	}
	if record.JadwalPangkatBerikutnya == nil {
		record.JadwalPangkatBerikutnya = schedule.NextDue(record.RiwayatTMTPangkat, schedule.PangkatOffsetYears)
	}
}
