package main

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/myrjola/fitnesspro/internal/e2etest"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
)

func Test_application_profileExport(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	t.Run("Without profile", func(t *testing.T) {
		if _, err = client.GetDocWithStatus(ctx, "/profile/export", http.StatusNotFound); err != nil {
			t.Errorf("Expected not found: %v", err)
		}
	})

	t.Run("With profile", func(t *testing.T) {
		doc := submitBMI(t, client, "70", "175")
		if doc.Find("footer a[href='/profile/export']").Length() != 1 {
			t.Error("Expected a download link once the profile exists")
		}

		resp, err := client.Get(ctx, "/profile/export")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		want := `attachment; filename="fitnesspro-profile.sqlite3"`
		if got := resp.Header.Get("Content-Disposition"); got != want {
			t.Errorf("Expected Content-Disposition %q, got %q", want, got)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read body: %v", err)
		}
		if !bytes.HasPrefix(body, []byte("SQLite format 3\x00")) {
			t.Error("Expected a SQLite database")
		}
	})
}
