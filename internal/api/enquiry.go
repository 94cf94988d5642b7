package api

import (
	"strings"

	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/gofiber/fiber/v2"
)

const msgInvalidEnquiryID = "Invalid enquiry ID"

func (h *handler) listEnquiries(c *fiber.Ctx) error {
	var (
		filter models.EnquiryFilter
		err    error
	)
	if filter.Paging, err = paging(c); err != nil {
		return err
	}
	if filter.Status, err = queryEnum[models.EnquiryStatus](c, "status"); err != nil {
		return err
	}
	if filter.Priority, err = queryEnum[models.EnquiryPriority](c, "priority"); err != nil {
		return err
	}
	if filter.Channel, err = queryEnum[models.EnquiryChannel](c, "channel"); err != nil {
		return err
	}
	filter.Search = strings.TrimSpace(c.Query("search"))

	page, err := h.services.Enquiries.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return listEnvelope(c, page)
}

func (h *handler) getEnquiry(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidEnquiryID)
	if err != nil {
		return err
	}

	enquiry, err := h.services.Enquiries.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, enquiry)
}

func (h *handler) createEnquiry(c *fiber.Ctx) error {
	var in models.EnquiryInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	enquiry, err := h.services.Enquiries.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusCreated, enquiry)
}

func (h *handler) updateEnquiry(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidEnquiryID)
	if err != nil {
		return err
	}
	var patch models.EnquiryPatch
	if err = parseBody(c, &patch); err != nil {
		return err
	}

	enquiry, err := h.services.Enquiries.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, enquiry)
}

func (h *handler) deleteEnquiry(c *fiber.Ctx) error {
	id, err := pathID(c, "id", msgInvalidEnquiryID)
	if err != nil {
		return err
	}

	if err = h.services.Enquiries.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return deletedEnvelope(c, "Enquiry")
}

func (h *handler) enquiryStats(c *fiber.Ctx) error {
	stats, err := h.services.Enquiries.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, stats)
}
