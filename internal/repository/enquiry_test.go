package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enquiryColumns = []string{
	"id", "name", "email", "phone", "topic", "message", "priority", "channel", "status",
	"assigned_to", "sla", "response", "resolved_at", "created_at", "updated_at",
}

func TestListEnquiries(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	id := uuid.New()
	message := "Need pricing for 50% of seats"

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)
		priority := models.PriorityHigh
		channel := models.ChannelWhatsApp
		filter := models.EnquiryFilter{
			Priority: &priority,
			Channel:  &channel,
			Search:   "50%",
			Paging:   models.Paging{Page: 3, Limit: 5},
		}
		where := "WHERE priority = $1 AND channel = $2 AND " +
			"(name ILIKE $3 OR email ILIKE $3 OR topic ILIKE $3 OR message ILIKE $3)"

		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM enquiries " + where)).
			WithArgs("High", "WhatsApp", `%50\%%`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery(regexp.QuoteMeta(where + " ORDER BY created_at DESC, id DESC LIMIT $4 OFFSET $5")).
			WithArgs("High", "WhatsApp", `%50\%%`, 5, 10).
			WillReturnRows(pgxmock.NewRows(enquiryColumns).
				AddRow(id, "Lead", "lead@example.com", nil, "Pricing", &message,
					models.PriorityHigh, models.ChannelWhatsApp, models.EnquiryNew,
					nil, nil, nil, nil, now, now))

		enquiries, total, err := repo.ListEnquiries(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, 11, total)
		require.Len(t, enquiries, 1)
		assert.Equal(t, models.EnquiryNew, enquiries[0].Status)
		assert.Nil(t, enquiries[0].ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM enquiries")).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta("FROM enquiries ORDER BY created_at DESC")).
			WithArgs(10, 0).
			WillReturnRows(pgxmock.NewRows(enquiryColumns).
				AddRow(id, "Lead", "lead@example.com", nil, "Pricing", nil,
					models.PriorityLow, models.ChannelEmail, models.EnquiryNew,
					nil, nil, nil, nil, now, now).
				RowError(0, assert.AnError))

		_, _, err := repo.ListEnquiries(ctx, models.EnquiryFilter{Paging: models.Paging{Page: 1, Limit: 10}})

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateEnquiry(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	id := uuid.New()

	mock, repo := newMockRepo(t)
	enquiry := &models.Enquiry{
		Name: "Lead", Email: "lead@example.com", Topic: "Pricing",
		Priority: models.PriorityMedium, Channel: models.ChannelEmail, Status: models.EnquiryNew,
	}

	mock.ExpectQuery(regexp.QuoteMeta(repository.InsertEnquirySQL)).
		WithArgs("Lead", "lead@example.com", (*string)(nil), "Pricing", (*string)(nil),
			"Medium", "Email", "New", (*uuid.UUID)(nil), (*string)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "resolved_at", "created_at", "updated_at"}).
			AddRow(id, nil, now, now))

	err := repo.CreateEnquiry(ctx, enquiry)

	require.NoError(t, err)
	assert.Equal(t, id, enquiry.ID)
	assert.Equal(t, now, enquiry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEnquiry(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	base := models.Enquiry{
		ID: uuid.New(), Name: "Lead", Email: "lead@example.com", Topic: "Pricing",
		Priority: models.PriorityMedium, Channel: models.ChannelEmail,
	}

	tests := []struct {
		name       string
		status     models.EnquiryStatus
		wantStamp  bool
		resolvedAt *time.Time
	}{
		{name: "first resolution stamps", status: models.EnquiryResolved, wantStamp: true, resolvedAt: &now},
		{name: "stored stamp survives", status: models.EnquiryClosed, wantStamp: true, resolvedAt: &earlier},
		{name: "open status does not stamp", status: models.EnquiryInProgress, wantStamp: false, resolvedAt: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mock, repo := newMockRepo(t)
			enquiry := base
			enquiry.Status = tt.status

			mock.ExpectQuery(regexp.QuoteMeta(repository.UpdateEnquirySQL)).
				WithArgs(enquiry.ID, "Lead", "lead@example.com", (*string)(nil), "Pricing", (*string)(nil),
					"Medium", "Email", string(tt.status), (*uuid.UUID)(nil), (*string)(nil), (*string)(nil),
					tt.wantStamp, now).
				WillReturnRows(pgxmock.NewRows([]string{"resolved_at", "updated_at"}).AddRow(tt.resolvedAt, now))

			err := repo.UpdateEnquiry(ctx, &enquiry, now)

			require.NoError(t, err)
			assert.Equal(t, tt.resolvedAt, enquiry.ResolvedAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("error - not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)
		enquiry := base
		enquiry.Status = models.EnquiryNew

		mock.ExpectQuery(regexp.QuoteMeta(repository.UpdateEnquirySQL)).
			WithArgs(enquiry.ID, "Lead", "lead@example.com", (*string)(nil), "Pricing", (*string)(nil),
				"Medium", "Email", "New", (*uuid.UUID)(nil), (*string)(nil), (*string)(nil), false, now).
			WillReturnError(pgx.ErrNoRows)

		err := repo.UpdateEnquiry(ctx, &enquiry, now)

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetAndDeleteEnquiry(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	id := uuid.New()

	t.Run("get - not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(repository.SelectEnquiryByIDSQL)).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetEnquiry(ctx, id)

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete - success", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(repository.DeleteEnquirySQL)).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.DeleteEnquiry(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete - not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(repository.DeleteEnquirySQL)).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.ErrorIs(t, repo.DeleteEnquiry(ctx, id), repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountEnquiriesBy(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT channel, count(*) FROM enquiries GROUP BY channel;")).
			WillReturnRows(pgxmock.NewRows([]string{"channel", "count"}).
				AddRow("Email", 7).
				AddRow("Call", 2))

		counts, err := repo.CountEnquiriesBy(ctx, repository.ByChannel)

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Email": 7, "Call": 2}, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - unknown dimension", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMockRepo(t)

		_, err := repo.CountEnquiriesBy(ctx, repository.EnquiryDimension("email; DROP TABLE enquiries"))

		require.ErrorContains(t, err, "unknown enquiry dimension")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
