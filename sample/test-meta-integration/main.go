package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/marketvibe/doorrenew-api/internal/infra/integration/meta"
)

// Fires a single test Lead event at the Conversion API. Set
// META_TEST_EVENT_CODE so the event shows up under Test Events in Events
// Manager instead of polluting real attribution data.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: no .env file found, using system environment")
	}

	pixelID := os.Getenv("META_PIXEL_ID")
	accessToken := os.Getenv("META_ACCESS_TOKEN")
	testEventCode := os.Getenv("META_TEST_EVENT_CODE")
	if pixelID == "" || accessToken == "" {
		log.Fatal("META_PIXEL_ID and META_ACCESS_TOKEN must be set")
	}
	if testEventCode == "" {
		log.Println("warning: META_TEST_EVENT_CODE is empty, this will send a LIVE event")
	}

	client := meta.NewClient(pixelID, accessToken, testEventCode)

	now := time.Now()
	event := meta.Event{
		EventName:      "Lead",
		EventTime:      now.Unix(),
		EventSourceURL: "https://doorrenew.com/orlando",
		EventID:        meta.LeadEventID("test.lead@example.com", "5551234567", now),
		UserData: meta.UserData{
			Em: []string{"test.lead@example.com"},
			Ph: []string{"5551234567"},
		},
		CustomData: map[string]any{
			"location":    "orlando",
			"door_issue":  "faded finish",
			"lead_source": "form",
		},
	}

	fmt.Println("Sending test Lead event...")
	fmt.Printf("  pixel:      %s\n", pixelID)
	fmt.Printf("  event_id:   %s\n", event.EventID)
	fmt.Printf("  test code:  %s\n\n", testEventCode)

	resp := client.Send(context.Background(), event)
	if resp == nil {
		log.Fatal("event was not delivered, see log output above")
	}

	fmt.Printf("Delivered. events_received=%d fbtrace_id=%s\n", resp.EventsReceived, resp.FBTraceID)
}
