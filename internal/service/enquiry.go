package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
	"github.com/RajatSinghRajawat/maanvibackend/internal/validation"
	"github.com/google/uuid"
)

const msgEnquiryNotFound = "Enquiry not found"

// EnquiryNotifier is told about every newly created enquiry.
// Implementations must not block the caller.
type EnquiryNotifier interface {
	EnquiryCreated(ctx context.Context, enquiry models.Enquiry)
}

type nopNotifier struct{}

func (nopNotifier) EnquiryCreated(context.Context, models.Enquiry) {}

// EnquiryService manages customer and lead enquiries.
type EnquiryService struct {
	log       *slog.Logger
	enquiries repository.EnquiryManager
	notifier  EnquiryNotifier
	metrics   *metrics.Metrics
	settings
}

// NewEnquiryService creates an EnquiryService. A nil notifier disables notifications.
func NewEnquiryService(
	log *slog.Logger,
	enquiries repository.EnquiryManager,
	notifier EnquiryNotifier,
	m *metrics.Metrics,
	opts ...Option,
) *EnquiryService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &EnquiryService{
		log:       log,
		enquiries: enquiries,
		notifier:  notifier,
		metrics:   m,
		settings:  newSettings(opts),
	}
}

// List returns one page of enquiries, newest first.
func (s *EnquiryService) List(ctx context.Context, filter models.EnquiryFilter) (models.Page[models.Enquiry], error) {
	filter.Paging = normalizePaging(filter.Paging, DefaultEnquiryPageSize)
	filter.Search = strings.TrimSpace(filter.Search)

	enquiries, total, err := s.enquiries.ListEnquiries(ctx, filter)
	if err != nil {
		return models.Page[models.Enquiry]{}, apperr.Internal(err)
	}

	return models.NewPage(enquiries, total, filter.Paging), nil
}

// Get returns a single enquiry.
func (s *EnquiryService) Get(ctx context.Context, id uuid.UUID) (models.Enquiry, error) {
	enquiry, err := s.enquiries.GetEnquiry(ctx, id)
	if err != nil {
		return models.Enquiry{}, storeError(err, msgEnquiryNotFound)
	}
	return enquiry, nil
}

// Create validates and stores a new enquiry with defaults Medium, Email and New,
// then notifies the configured chats.
func (s *EnquiryService) Create(ctx context.Context, in models.EnquiryInput) (models.Enquiry, error) {
	normalizeEnquiryInput(&in)
	if err := validation.Struct(in); err != nil {
		return models.Enquiry{}, err
	}

	enquiry := models.Enquiry{
		Priority: models.PriorityMedium,
		Channel:  models.ChannelEmail,
		Status:   models.EnquiryNew,
	}
	applyEnquiry(&enquiry, in)

	if err := s.enquiries.CreateEnquiry(ctx, &enquiry); err != nil {
		return models.Enquiry{}, writeEnquiryError(err)
	}

	s.metrics.EnquiriesCreated.Inc()
	s.log.InfoContext(ctx, "Enquiry created", "enquiry_id", enquiry.ID, "channel", enquiry.Channel)
	s.notifier.EnquiryCreated(ctx, enquiry)

	return enquiry, nil
}

// Update merges the patch into the stored enquiry and saves it. The first move
// into Resolved or Closed stamps the resolution time; later updates keep it.
func (s *EnquiryService) Update(ctx context.Context, id uuid.UUID, patch models.EnquiryPatch) (models.Enquiry, error) {
	if err := validation.Struct(patch); err != nil {
		return models.Enquiry{}, err
	}

	enquiry, err := s.enquiries.GetEnquiry(ctx, id)
	if err != nil {
		return models.Enquiry{}, storeError(err, msgEnquiryNotFound)
	}

	merged := mergeEnquiry(enquiry, patch)
	normalizeEnquiryInput(&merged)
	if err = validation.Struct(merged); err != nil {
		return models.Enquiry{}, err
	}
	applyEnquiry(&enquiry, merged)

	if err = s.enquiries.UpdateEnquiry(ctx, &enquiry, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Enquiry{}, apperr.NotFound(msgEnquiryNotFound)
		}
		return models.Enquiry{}, writeEnquiryError(err)
	}

	return enquiry, nil
}

// Delete removes an enquiry.
func (s *EnquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.enquiries.DeleteEnquiry(ctx, id); err != nil {
		return storeError(err, msgEnquiryNotFound)
	}
	return nil
}

// Stats summarises all enquiries. Every status, priority and channel is present in the breakdowns.
func (s *EnquiryService) Stats(ctx context.Context) (models.EnquiryStats, error) {
	byStatus, err := s.enquiries.CountEnquiriesBy(ctx, repository.ByStatus)
	if err != nil {
		return models.EnquiryStats{}, apperr.Internal(err)
	}
	byPriority, err := s.enquiries.CountEnquiriesBy(ctx, repository.ByPriority)
	if err != nil {
		return models.EnquiryStats{}, apperr.Internal(err)
	}
	byChannel, err := s.enquiries.CountEnquiriesBy(ctx, repository.ByChannel)
	if err != nil {
		return models.EnquiryStats{}, apperr.Internal(err)
	}

	stats := models.EnquiryStats{
		StatusBreakdown:   make(map[models.EnquiryStatus]int),
		PriorityBreakdown: make(map[models.EnquiryPriority]int),
		ChannelBreakdown:  make(map[models.EnquiryChannel]int),
	}
	for _, status := range models.AllEnquiryStatuses() {
		stats.StatusBreakdown[status] = byStatus[string(status)]
		stats.Total += byStatus[string(status)]
	}
	for _, priority := range models.AllEnquiryPriorities() {
		stats.PriorityBreakdown[priority] = byPriority[string(priority)]
	}
	for _, channel := range models.AllEnquiryChannels() {
		stats.ChannelBreakdown[channel] = byChannel[string(channel)]
	}
	stats.New = stats.StatusBreakdown[models.EnquiryNew]
	stats.InProgress = stats.StatusBreakdown[models.EnquiryInProgress]
	stats.Resolved = stats.StatusBreakdown[models.EnquiryResolved]

	return stats, nil
}

func writeEnquiryError(err error) error {
	if errors.Is(err, repository.ErrReferenceMissing) {
		return apperr.Validation("Validation failed",
			apperr.FieldError{Field: "assignedTo", Message: "Assigned admin does not exist"})
	}
	return apperr.Internal(err)
}

func normalizeEnquiryInput(in *models.EnquiryInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Topic = strings.TrimSpace(in.Topic)
	in.Phone = optional(in.Phone)
	in.Message = optional(in.Message)
	in.AssignedTo = optional(in.AssignedTo)
	in.SLA = optional(in.SLA)
	in.Response = optional(in.Response)
}

// applyEnquiry copies a validated input onto the enquiry. Unset enums keep the current value.
func applyEnquiry(enquiry *models.Enquiry, in models.EnquiryInput) {
	enquiry.Name = in.Name
	enquiry.Email = in.Email
	enquiry.Phone = in.Phone
	enquiry.Topic = in.Topic
	enquiry.Message = in.Message
	if in.Priority != nil {
		enquiry.Priority = *in.Priority
	}
	if in.Channel != nil {
		enquiry.Channel = *in.Channel
	}
	if in.Status != nil {
		enquiry.Status = *in.Status
	}
	enquiry.AssignedTo = nil
	if in.AssignedTo != nil {
		if id, err := uuid.Parse(*in.AssignedTo); err == nil {
			enquiry.AssignedTo = &id
		}
	}
	enquiry.SLA = in.SLA
	enquiry.Response = in.Response
}

// mergeEnquiry returns the stored enquiry as an input with the patch applied on top.
func mergeEnquiry(enquiry models.Enquiry, patch models.EnquiryPatch) models.EnquiryInput {
	priority, channel, status := enquiry.Priority, enquiry.Channel, enquiry.Status
	merged := models.EnquiryInput{
		Name:     enquiry.Name,
		Email:    enquiry.Email,
		Phone:    enquiry.Phone,
		Topic:    enquiry.Topic,
		Message:  enquiry.Message,
		Priority: &priority,
		Channel:  &channel,
		Status:   &status,
		SLA:      enquiry.SLA,
		Response: enquiry.Response,
	}
	if enquiry.AssignedTo != nil {
		assigned := enquiry.AssignedTo.String()
		merged.AssignedTo = &assigned
	}

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Phone != nil {
		merged.Phone = patch.Phone
	}
	if patch.Topic != nil {
		merged.Topic = *patch.Topic
	}
	if patch.Message != nil {
		merged.Message = patch.Message
	}
	if patch.Priority != nil {
		merged.Priority = patch.Priority
	}
	if patch.Channel != nil {
		merged.Channel = patch.Channel
	}
	if patch.Status != nil {
		merged.Status = patch.Status
	}
	if patch.AssignedTo != nil {
		merged.AssignedTo = patch.AssignedTo
	}
	if patch.SLA != nil {
		merged.SLA = patch.SLA
	}
	if patch.Response != nil {
		merged.Response = patch.Response
	}

	return merged
}
