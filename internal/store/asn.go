package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/marewang/final-bnn/types"
)

// ASNRepository handles persistence for personnel records.
type ASNRepository struct {
	db *sql.DB
}

func NewASNRepository(db *sql.DB) *ASNRepository {
	return &ASNRepository{db: db}
}

// List returns a page of records, newest change first, optionally
// filtered by a case-insensitive substring match on nama or nip.
func (r *ASNRepository) List(ctx context.Context, q string, offset, limit int) ([]types.ASN, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 10
	}

	const countQuery = `
		SELECT COUNT(1)
		FROM asns
		WHERE ($1 = '' OR nama ILIKE '%' || $1 || '%' OR nip ILIKE '%' || $1 || '%')`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, q).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, nama, nip, tmt_pns, riwayat_tmt_kgb, riwayat_tmt_pangkat,
			jadwal_kgb_berikutnya, jadwal_pangkat_berikutnya, updated_at
		FROM asns
		WHERE ($1 = '' OR nama ILIKE '%' || $1 || '%' OR nip ILIKE '%' || $1 || '%')
		ORDER BY updated_at DESC NULLS LAST, id DESC
		OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, listQuery, q, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]types.ASN, 0, limit)
	for rows.Next() {
		record, err := scanASN(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *ASNRepository) Get(ctx context.Context, id int64) (types.ASN, error) {
	const query = `
		SELECT id, nama, nip, tmt_pns, riwayat_tmt_kgb, riwayat_tmt_pangkat,
			jadwal_kgb_berikutnya, jadwal_pangkat_berikutnya, updated_at
		FROM asns
		WHERE id = $1`
	record, err := scanASN(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ASN{}, ErrNotFound
		}
		return types.ASN{}, err
	}
	return record, nil
}

func (r *ASNRepository) Create(ctx context.Context, record types.ASN) (types.ASN, error) {
	record.UpdatedAt = time.Now()

	const query = `
		INSERT INTO asns (nama, nip, tmt_pns, riwayat_tmt_kgb, riwayat_tmt_pangkat,
			jadwal_kgb_berikutnya, jadwal_pangkat_berikutnya, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		record.Nama,
		record.NIP,
		record.TMTPNS,
		record.RiwayatTMTKGB,
		record.RiwayatTMTPangkat,
		record.JadwalKGBBerikutnya,
		record.JadwalPangkatBerikutnya,
		record.UpdatedAt,
	).Scan(&record.ID); err != nil {
		return types.ASN{}, err
	}
	return record, nil
}

func (r *ASNRepository) Update(ctx context.Context, record types.ASN) (types.ASN, error) {
	record.UpdatedAt = time.Now()

	const query = `
		UPDATE asns
		SET nama = $1,
			nip = $2,
			tmt_pns = $3,
			riwayat_tmt_kgb = $4,
			riwayat_tmt_pangkat = $5,
			jadwal_kgb_berikutnya = $6,
			jadwal_pangkat_berikutnya = $7,
			updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(
		ctx,
		query,
		record.Nama,
		record.NIP,
		record.TMTPNS,
		record.RiwayatTMTKGB,
		record.RiwayatTMTPangkat,
		record.JadwalKGBBerikutnya,
		record.JadwalPangkatBerikutnya,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return types.ASN{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.ASN{}, err
	}
	if affected == 0 {
		return types.ASN{}, ErrNotFound
	}
	return record, nil
}

func (r *ASNRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM asns WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DueKGBWithin selects records whose next KGB date falls inside
// [today, today + months], soonest first. Bounds are inclusive; months
// must already be normalized to a permitted window.
func (r *ASNRepository) DueKGBWithin(ctx context.Context, months int) ([]types.ASNReminder, error) {
	const query = `
		SELECT id, nama, nip, jadwal_kgb_berikutnya
		FROM asns
		WHERE jadwal_kgb_berikutnya IS NOT NULL
			AND jadwal_kgb_berikutnya BETWEEN CURRENT_DATE AND (CURRENT_DATE + make_interval(months => $1))
		ORDER BY jadwal_kgb_berikutnya ASC, id ASC`
	return r.queryReminders(ctx, query, months)
}

// DuePangkatWithin is the promotion counterpart of DueKGBWithin. The
// two selections are independent by design.
func (r *ASNRepository) DuePangkatWithin(ctx context.Context, months int) ([]types.ASNReminder, error) {
	const query = `
		SELECT id, nama, nip, jadwal_pangkat_berikutnya
		FROM asns
		WHERE jadwal_pangkat_berikutnya IS NOT NULL
			AND jadwal_pangkat_berikutnya BETWEEN CURRENT_DATE AND (CURRENT_DATE + make_interval(months => $1))
		ORDER BY jadwal_pangkat_berikutnya ASC, id ASC`
	return r.queryReminders(ctx, query, months)
}

func (r *ASNRepository) queryReminders(ctx context.Context, query string, months int) ([]types.ASNReminder, error) {
	rows, err := r.db.QueryContext(ctx, query, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]types.ASNReminder, 0)
	for rows.Next() {
		var item types.ASNReminder
		if err := rows.Scan(&item.ID, &item.Nama, &item.NIP, &item.Jadwal); err != nil {
			return nil, err
		}
		reminders = append(reminders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reminders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanASN(row rowScanner) (types.ASN, error) {
	var record types.ASN
	var tmtPNS, tmtKGB, tmtPangkat, dueKGB, duePangkat sql.NullTime
	err := row.Scan(
		&record.ID,
		&record.Nama,
		&record.NIP,
		&tmtPNS,
		&tmtKGB,
		&tmtPangkat,
		&dueKGB,
		&duePangkat,
		&record.UpdatedAt,
	)
	if err != nil {
		return types.ASN{}, err
	}
	record.TMTPNS = dateFromNull(tmtPNS)
	record.RiwayatTMTKGB = dateFromNull(tmtKGB)
	record.RiwayatTMTPangkat = dateFromNull(tmtPangkat)
	record.JadwalKGBBerikutnya = dateFromNull(dueKGB)
	record.JadwalPangkatBerikutnya = dateFromNull(duePangkat)
	return record, nil
}

func dateFromNull(v sql.NullTime) *types.Date {
	if !v.Valid {
		return nil
	}
	d := types.NewDate(v.Time.Year(), v.Time.Month(), v.Time.Day())
	return &d
}
