package models

import (
	"time"

	"github.com/google/uuid"
)

// EnquiryPriority ranks how urgently an enquiry needs attention.
type EnquiryPriority string

const (
	PriorityHigh   EnquiryPriority = "High"
	PriorityMedium EnquiryPriority = "Medium"
	PriorityLow    EnquiryPriority = "Low"
)

// AllEnquiryPriorities lists every priority in display order.
func AllEnquiryPriorities() []EnquiryPriority {
	return []EnquiryPriority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether p is one of the known priorities.
func (p EnquiryPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// EnquiryChannel is the medium an enquiry arrived through.
type EnquiryChannel string

const (
	ChannelEmail    EnquiryChannel = "Email"
	ChannelCall     EnquiryChannel = "Call"
	ChannelWhatsApp EnquiryChannel = "WhatsApp"
	ChannelWebsite  EnquiryChannel = "Website"
	ChannelOther    EnquiryChannel = "Other"
)

// AllEnquiryChannels lists every channel in display order.
func AllEnquiryChannels() []EnquiryChannel {
	return []EnquiryChannel{ChannelEmail, ChannelCall, ChannelWhatsApp, ChannelWebsite, ChannelOther}
}

// IsValid reports whether c is one of the known channels.
func (c EnquiryChannel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelCall, ChannelWhatsApp, ChannelWebsite, ChannelOther:
		return true
	}
	return false
}

// EnquiryStatus tracks an enquiry through its handling.
type EnquiryStatus string

const (
	EnquiryNew        EnquiryStatus = "New"
	EnquiryInProgress EnquiryStatus = "In Progress"
	EnquiryResolved   EnquiryStatus = "Resolved"
	EnquiryClosed     EnquiryStatus = "Closed"
)

// AllEnquiryStatuses lists every enquiry status in display order.
func AllEnquiryStatuses() []EnquiryStatus {
	return []EnquiryStatus{EnquiryNew, EnquiryInProgress, EnquiryResolved, EnquiryClosed}
}

// IsValid reports whether s is one of the known statuses.
func (s EnquiryStatus) IsValid() bool {
	switch s {
	case EnquiryNew, EnquiryInProgress, EnquiryResolved, EnquiryClosed:
		return true
	}
	return false
}

// IsFinal reports whether the status ends the handling of an enquiry.
func (s EnquiryStatus) IsFinal() bool {
	return s == EnquiryResolved || s == EnquiryClosed
}

// Enquiry is a customer or lead contact.
type Enquiry struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      *string         `json:"phone,omitempty"`
	Topic      string          `json:"topic"`
	Message    *string         `json:"message,omitempty"`
	Priority   EnquiryPriority `json:"priority"`
	Channel    EnquiryChannel  `json:"channel"`
	Status     EnquiryStatus   `json:"status"`
	AssignedTo *uuid.UUID      `json:"assignedTo,omitempty"`
	SLA        *string         `json:"sla,omitempty"`
	Response   *string         `json:"response,omitempty"`
	ResolvedAt *time.Time      `json:"resolvedAt,omitempty"` // Set once, on the first move to Resolved or Closed
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// EnquiryInput is the payload for creating an enquiry.
type EnquiryInput struct {
	Name       string           `json:"name"       validate:"required,notblank"`
	Email      string           `json:"email"      validate:"required,email"`
	Phone      *string          `json:"phone"`
	Topic      string           `json:"topic"      validate:"required,notblank"`
	Message    *string          `json:"message"`
	Priority   *EnquiryPriority `json:"priority"   validate:"omitempty,enum"`
	Channel    *EnquiryChannel  `json:"channel"    validate:"omitempty,enum"`
	Status     *EnquiryStatus   `json:"status"     validate:"omitempty,enum"`
	AssignedTo *string          `json:"assignedTo" validate:"omitempty,uuid"`
	SLA        *string          `json:"sla"`
	Response   *string          `json:"response"`
}

// EnquiryPatch is the payload for updating an enquiry. Nil fields are left untouched.
type EnquiryPatch struct {
	Name       *string          `json:"name"       validate:"omitempty,notblank"`
	Email      *string          `json:"email"      validate:"omitempty,email"`
	Phone      *string          `json:"phone"`
	Topic      *string          `json:"topic"      validate:"omitempty,notblank"`
	Message    *string          `json:"message"`
	Priority   *EnquiryPriority `json:"priority"   validate:"omitempty,enum"`
	Channel    *EnquiryChannel  `json:"channel"    validate:"omitempty,enum"`
	Status     *EnquiryStatus   `json:"status"     validate:"omitempty,enum"`
	AssignedTo *string          `json:"assignedTo" validate:"omitempty,uuid"`
	SLA        *string          `json:"sla"`
	Response   *string          `json:"response"`
}

// EnquiryFilter narrows an enquiry listing.
type EnquiryFilter struct {
	Status   *EnquiryStatus
	Priority *EnquiryPriority
	Channel  *EnquiryChannel
	Search   string
	Paging
}

// EnquiryStats is the aggregate view over all enquiries.
type EnquiryStats struct {
	Total             int                     `json:"total"`
	New               int                     `json:"new"`
	InProgress        int                     `json:"inProgress"`
	Resolved          int                     `json:"resolved"`
	StatusBreakdown   map[EnquiryStatus]int   `json:"statusBreakdown"`
	PriorityBreakdown map[EnquiryPriority]int `json:"priorityBreakdown"`
	ChannelBreakdown  map[EnquiryChannel]int  `json:"channelBreakdown"`
}
