package types

import "time"

// ASN represents a civil-servant personnel record.
//
// The record tracks the historical effective dates (TMT) of the last
// salary-step increase (KGB) and the last rank promotion (Pangkat),
// together with the forward-looking due dates derived from them: KGB
// recurs every 2 years, Pangkat every 4. Due dates are nullable — a
// record with no history has nothing due — and may be manually
// overridden by the operator.
type ASN struct {
	// ID is the unique identifier of the record.
	ID int64 `json:"id" db:"id"`

	// Nama is the civil servant's full name.
	Nama string `json:"nama" db:"nama"`

	// NIP is the national employee number, a fixed-length string of
	// exactly 18 digits.
	NIP string `json:"nip" db:"nip"`

	// TMTPNS is the effective date of the initial civil-service
	// appointment.
	TMTPNS *Date `json:"tmt_pns" db:"tmt_pns"`

	// RiwayatTMTKGB is the effective date of the most recent
	// salary-step increase.
	RiwayatTMTKGB *Date `json:"riwayat_tmt_kgb" db:"riwayat_tmt_kgb"`

	// RiwayatTMTPangkat is the effective date of the most recent
	// rank promotion.
	RiwayatTMTPangkat *Date `json:"riwayat_tmt_pangkat" db:"riwayat_tmt_pangkat"`

	// JadwalKGBBerikutnya is the next salary-step due date. When not
	// set explicitly by the operator it is derived as
	// RiwayatTMTKGB + 2 years.
	JadwalKGBBerikutnya *Date `json:"jadwal_kgb_berikutnya" db:"jadwal_kgb_berikutnya"`

	// JadwalPangkatBerikutnya is the next promotion due date. When
	// not set explicitly by the operator it is derived as
	// RiwayatTMTPangkat + 4 years.
	JadwalPangkatBerikutnya *Date `json:"jadwal_pangkat_berikutnya" db:"jadwal_pangkat_berikutnya"`

	// UpdatedAt is the timestamp of the most recent change to the record.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ASNReminder is the projection of a personnel record returned by the
// reminder listings: just enough to identify the person and the date
// coming due.
type ASNReminder struct {
	// ID is the identifier of the underlying personnel record.
	ID int64 `json:"id" db:"id"`

	// Nama is the civil servant's full name.
	Nama string `json:"nama" db:"nama"`

	// NIP is the national employee number.
	NIP string `json:"nip" db:"nip"`

	// Jadwal is the due date that falls inside the requested
	// lookahead window.
	Jadwal Date `json:"jadwal" db:"jadwal"`
}
