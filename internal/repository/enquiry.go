package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/google/uuid"
)

// EnquiryDimension names a column enquiries can be grouped by.
type EnquiryDimension string

const (
	ByStatus   EnquiryDimension = "status"
	ByPriority EnquiryDimension = "priority"
	ByChannel  EnquiryDimension = "channel"
)

func (d EnquiryDimension) valid() bool {
	return d == ByStatus || d == ByPriority || d == ByChannel
}

func scanEnquiry(row rowScanner) (models.Enquiry, error) {
	var enquiry models.Enquiry
	err := row.Scan(
		&enquiry.ID, &enquiry.Name, &enquiry.Email, &enquiry.Phone, &enquiry.Topic, &enquiry.Message,
		&enquiry.Priority, &enquiry.Channel, &enquiry.Status, &enquiry.AssignedTo, &enquiry.SLA,
		&enquiry.Response, &enquiry.ResolvedAt, &enquiry.CreatedAt, &enquiry.UpdatedAt,
	)
	return enquiry, err
}

func enquiryWhere(filter models.EnquiryFilter) *whereClause {
	where := &whereClause{}
	if filter.Status != nil {
		where.add("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		where.add("priority = ?", string(*filter.Priority))
	}
	if filter.Channel != nil {
		where.add("channel = ?", string(*filter.Channel))
	}
	if filter.Search != "" {
		where.add(enquirySearchCondition, containsPattern(filter.Search))
	}
	return where
}

// ListEnquiries returns one page of enquiries matching the filter, newest first,
// together with the number of matching enquiries across all pages.
func (r *Repository) ListEnquiries(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error) {
	where := enquiryWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, CountEnquiriesSQL+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count enquiries: %w", err)
	}

	limit, args := where.paginate(filter.Limit, filter.Offset())
	rows, err := r.db.Query(ctx, SelectEnquiriesSQL+where.String()+newestFirst+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []models.Enquiry
	for rows.Next() {
		enquiry, errScan := scanEnquiry(rows)
		if errScan != nil {
			return nil, 0, fmt.Errorf("failed to scan enquiry row: %w", errScan)
		}
		enquiries = append(enquiries, enquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read enquiry rows: %w", err)
	}

	return enquiries, total, nil
}

// GetEnquiry returns the enquiry with the given id.
func (r *Repository) GetEnquiry(ctx context.Context, id uuid.UUID) (models.Enquiry, error) {
	enquiry, err := scanEnquiry(r.db.QueryRow(ctx, SelectEnquiryByIDSQL, id))
	if err != nil {
		return models.Enquiry{}, fmt.Errorf("failed to get enquiry %s: %w", id, classify(err))
	}

	return enquiry, nil
}

// CreateEnquiry inserts the enquiry and fills in the generated id and timestamps.
func (r *Repository) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error {
	err := r.db.QueryRow(ctx, InsertEnquirySQL,
		enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Topic, enquiry.Message,
		string(enquiry.Priority), string(enquiry.Channel), string(enquiry.Status),
		enquiry.AssignedTo, enquiry.SLA, enquiry.Response,
	).Scan(&enquiry.ID, &enquiry.ResolvedAt, &enquiry.CreatedAt, &enquiry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert enquiry: %w", classify(err))
	}

	return nil
}

// UpdateEnquiry writes every mutable field of the enquiry. When the new status is final
// and the stored row has no resolution time yet, resolvedAt is stamped; an existing
// resolution time is never overwritten. ResolvedAt and UpdatedAt are refreshed from the row.
func (r *Repository) UpdateEnquiry(ctx context.Context, enquiry *models.Enquiry, resolvedAt time.Time) error {
	err := r.db.QueryRow(ctx, UpdateEnquirySQL,
		enquiry.ID, enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Topic, enquiry.Message,
		string(enquiry.Priority), string(enquiry.Channel), string(enquiry.Status),
		enquiry.AssignedTo, enquiry.SLA, enquiry.Response,
		enquiry.Status.IsFinal(), resolvedAt,
	).Scan(&enquiry.ResolvedAt, &enquiry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update enquiry %s: %w", enquiry.ID, classify(err))
	}

	return nil
}

// DeleteEnquiry removes the enquiry with the given id.
func (r *Repository) DeleteEnquiry(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, DeleteEnquirySQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete enquiry %s: %w", id, ErrNotFound)
	}

	return nil
}

// CountEnquiriesBy groups all enquiries by the given column and returns the count per value.
func (r *Repository) CountEnquiriesBy(ctx context.Context, dimension EnquiryDimension) (map[string]int, error) {
	if !dimension.valid() {
		return nil, fmt.Errorf("unknown enquiry dimension %q", dimension)
	}

	query := fmt.Sprintf("SELECT %[1]s, count(*) FROM enquiries GROUP BY %[1]s;", dimension)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying enquiry counts by %s: %w", dimension, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			value string
			count int
		)
		if err = rows.Scan(&value, &count); err != nil {
			return nil, fmt.Errorf("error scanning enquiry count row: %w", err)
		}
		counts[value] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enquiry count rows: %w", err)
	}

	return counts, nil
}
