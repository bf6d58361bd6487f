package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marewang/final-bnn/internal/services"
	"github.com/marewang/final-bnn/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInRouter(t *testing.T) (*chi.Mux, *http.Cookie) {
	t.Helper()

	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"name":"Admin","email":"admin@bnn.go.id","password":"rahasia1"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/auth/login",
		`{"email":"admin@bnn.go.id","password":"rahasia1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return router, sessionCookie(t, rec)
}

func TestCreateASNValidation(t *testing.T) {
	router, cookie := loggedInRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"short nama", `{"nama":"Ab","nip":"198001012005012001"}`},
		{"short nip", `{"nama":"Sari Wulandari","nip":"12345"}`},
		{"non-digit nip", `{"nama":"Sari Wulandari","nip":"19800101200501200x"}`},
		{"not json", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/asn/", tc.body, []*http.Cookie{cookie})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateASNDerivesDueDates(t *testing.T) {
	router, cookie := loggedInRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/asn/",
		`{"nama":"Sari Wulandari","nip":"198001012005012001","riwayat_tmt_kgb":"2024-04-01"}`,
		[]*http.Cookie{cookie})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created types.ASN
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.JadwalKGBBerikutnya)
	assert.Equal(t, "2026-04-01", created.JadwalKGBBerikutnya.String())
	assert.Nil(t, created.JadwalPangkatBerikutnya)
}

func TestASNPaginationParsing(t *testing.T) {
	router, cookie := loggedInRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/asn/?page=0", "", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/asn/?pageSize=abc", "", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/asn/?page=2&pageSize=500&q=sari", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	var listing ASNListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, 2, listing.Page)
	assert.Equal(t, maxPageSize, listing.PageSize)
}

func TestASNInvalidID(t *testing.T) {
	router, cookie := loggedInRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/asn/abc/", "", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/asn/42/", "", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fixedReminderRepo struct{}

func (fixedReminderRepo) DueKGBWithin(ctx context.Context, months int) ([]types.ASNReminder, error) {
	return []types.ASNReminder{
		{ID: 1, Nama: "Sari Wulandari", NIP: "198001012005012001", Jadwal: types.NewDate(2026, time.September, 10)},
	}, nil
}

func (fixedReminderRepo) DuePangkatWithin(ctx context.Context, months int) ([]types.ASNReminder, error) {
	return []types.ASNReminder{}, nil
}

func TestListReminders(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/reminders", func(r chi.Router) {
		ReminderRouter(r, services.NewReminderService(fixedReminderRepo{}))
	})

	rec := doJSON(t, router, http.MethodGet, "/reminders/?months=banyak", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got services.Reminders
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Months)
	require.Len(t, got.KGB, 1)
	assert.Equal(t, "2026-09-10", got.KGB[0].Jadwal.String())
	assert.Empty(t, got.Pangkat)
}
