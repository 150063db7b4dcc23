package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"hackathon-portal/models"
	"hackathon-portal/repository"
)

// SeedEvents inserts the sample event schedule, including one recurring
// stand-up event.
func SeedEvents(eventRepo repository.EventRepository) {
	log.Println("Seeding events...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eventsData := []*models.Event{
		{
			Name:        "Opening Ceremony",
			Description: "Kickoff, rules, and team formation",
			Location:    "Main Hall",
			Date:        "2026-09-12",
			StartTime:   "09:00",
			EndTime:     "10:00",
		},
		{
			Name:        "Dinner",
			Description: "Catered dinner for all participants",
			Location:    "Cafeteria",
			Date:        "2026-09-12",
			StartTime:   "18:00",
			EndTime:     "19:30",
		},
		{
			Name:           "Team Stand-up",
			Description:    "Short progress round with mentors",
			Location:       "Room 204",
			Date:           "2026-09-12",
			StartTime:      "12:00",
			EndTime:        "12:30",
			RecurrenceRule: "FREQ=DAILY;COUNT=3",
		},
		{
			Name:        "Closing Ceremony",
			Description: "Project demos and awards",
			Location:    "Main Hall",
			Date:        "2026-09-14",
			StartTime:   "16:00",
			EndTime:     "18:00",
		},
	}

	existing, err := eventRepo.FindAll(ctx)
	if err != nil {
		log.Printf("failed to list events before seeding: %v", err)
		return
	}
	existingNames := make(map[string]bool, len(existing))
	for _, event := range existing {
		existingNames[event.Name] = true
	}

	for _, event := range eventsData {
		if existingNames[event.Name] {
			fmt.Printf("Skipping: event %q already exists.\n", event.Name)
			continue
		}
		if _, err := eventRepo.Create(ctx, event); err != nil {
			log.Printf("failed to seed event %q: %v", event.Name, err)
		} else {
			fmt.Printf("Event %q added.\n", event.Name)
		}
	}

	log.Println("Event seeding finished.")
}
