package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hackathon-portal/models"
	util "hackathon-portal/pkg/utils"
	"hackathon-portal/repository"
)

type EventHandler struct {
	eventRepo repository.EventRepository
}

func NewEventHandler(eventRepo repository.EventRepository) *EventHandler {
	return &EventHandler{eventRepo: eventRepo}
}

// CreateEvent godoc
// @Summary Create event
// @Description Creates an event, optionally recurring via an RRULE (admin only)
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body models.EventCreatePayload true "Event data"
// @Success 201 {object} models.Event
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /admin/events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var payload models.EventCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	if payload.RecurrenceRule != "" {
		if _, err := rrule.StrToROption(payload.RecurrenceRule); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid recurrence rule: " + err.Error()})
		}
	}

	event := &models.Event{
		Name:           payload.Name,
		Description:    payload.Description,
		Location:       payload.Location,
		Date:           payload.Date,
		StartTime:      payload.StartTime,
		EndTime:        payload.EndTime,
		RecurrenceRule: payload.RecurrenceRule,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	created, err := h.eventRepo.Create(ctx, event)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create event"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAllEvents returns the full event catalog.
func (h *EventHandler) GetAllEvents(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	events, err := h.eventRepo.FindAll(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve events"})
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

// ListEventSelector returns {id, name} pairs for the scanner's event
// dropdown.
func (h *EventHandler) ListEventSelector(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	items, err := h.eventRepo.ListSelector(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve events"})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *EventHandler) GetEventByID(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	event, err := h.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up event"})
	}
	if event == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	return c.Status(fiber.StatusOK).JSON(event)
}

// GetEventOccurrences expands recurring events into concrete occurrences
// between start_date and end_date, inclusive.
func (h *EventHandler) GetEventOccurrences(c *fiber.Ctx) error {
	layout := "2006-01-02"
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	startDate, err := time.Parse(layout, startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format"})
	}
	endDate, err := time.Parse(layout, endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	events, err := h.eventRepo.FindAll(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve events"})
	}

	occurrences := expandEventOccurrences(events, startDate, endDate)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": occurrences})
}

// expandEventOccurrences materializes every occurrence of each event inside
// the [startDate, endDate] window. Non-recurring events contribute
// themselves when their date falls in the window; recurring ones are
// expanded through their RRULE with the event date as DTSTART.
func expandEventOccurrences(events []models.Event, startDate, endDate time.Time) []models.Event {
	layout := "2006-01-02"
	occurrences := []models.Event{}

	for _, event := range events {
		if event.RecurrenceRule != "" {
			rOption, err := rrule.StrToROption(event.RecurrenceRule)
			if err != nil {
				continue
			}

			eventStartDate, err := time.Parse(layout, event.Date)
			if err != nil {
				continue
			}
			rOption.Dtstart = eventStartDate

			rr, err := rrule.NewRRule(*rOption)
			if err != nil {
				continue
			}

			ruleSet := rrule.Set{}
			ruleSet.RRule(rr)

			instances := ruleSet.Between(startDate, endDate, true)

			for _, instance := range instances {
				occurrences = append(occurrences, models.Event{
					ID:             event.ID,
					Name:           event.Name,
					Description:    event.Description,
					Location:       event.Location,
					Date:           instance.Format(layout),
					StartTime:      event.StartTime,
					EndTime:        event.EndTime,
					RecurrenceRule: event.RecurrenceRule,
				})
			}
		} else {
			eventDate, err := time.Parse(layout, event.Date)
			if err != nil {
				continue
			}
			if (eventDate.After(startDate) || eventDate.Equal(startDate)) && (eventDate.Before(endDate) || eventDate.Equal(endDate)) {
				occurrences = append(occurrences, event)
			}
		}
	}

	return occurrences
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	var payload models.EventUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	if payload.RecurrenceRule != "" {
		if _, err := rrule.StrToROption(payload.RecurrenceRule); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid recurrence rule: " + err.Error()})
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.eventRepo.Update(ctx, eventID, &payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update event"})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Event updated successfully",
		"event_id": eventID.Hex(),
	})
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.eventRepo.Delete(ctx, eventID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Event deleted successfully",
		"event_id": eventID.Hex(),
	})
}
