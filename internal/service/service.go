// Package service holds the business rules of the admin backend. Services
// validate input, apply defaults, call the store and translate its failures
// into apperr kinds.
package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/RajatSinghRajawat/maanvibackend/internal/repository"
)

const (
	DefaultEmployeePageSize   = 10
	DefaultEnquiryPageSize    = 10
	DefaultAttendancePageSize = 50
)

// Option customises a service.
type Option func(*settings)

type settings struct {
	now func() time.Time
	loc *time.Location
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithClock makes the service read the current time from now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLocation sets the location calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// storeError translates a store failure. Missing rows become NotFound with
// the given message, anything unexpected becomes Internal.
func storeError(err error, notFound string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.Internal(err)
}

func normalizePaging(p models.Paging, defaultLimit int) models.Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optional trims the value and maps blank strings to nil.
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
