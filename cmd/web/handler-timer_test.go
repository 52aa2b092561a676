package main

import (
	"testing"

	"github.com/myrjola/fitnesspro/internal/e2etest"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
)

func Test_application_timer(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	tests := []struct {
		path    string
		display string
	}{
		{path: "/timer", display: "01:00"},
		{path: "/timer?preset=90", display: "01:30"},
		{path: "/timer?preset=45", display: "00:45"},
		{path: "/timer?preset=0", display: "01:00"},
		{path: "/timer?preset=abc", display: "01:00"},
		{path: "/timer?preset=7200", display: "01:00"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			doc, err := client.GetDoc(ctx, tt.path)
			if err != nil {
				t.Fatalf("Failed to get document: %v", err)
			}
			if got := e2etest.Text(doc, ".timer-display"); got != tt.display {
				t.Errorf("Expected display %q, got %q", tt.display, got)
			}
			if got := doc.Find(".presets a").Length(); got != 5 {
				t.Errorf("Expected 5 presets, got %d", got)
			}
		})
	}

	t.Run("Title", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/timer")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if got := e2etest.Text(doc, "title"); got != "Fitness Pro - Rest Timer" {
			t.Errorf("Unexpected title %q", got)
		}
	})
}
