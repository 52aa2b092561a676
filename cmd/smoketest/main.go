package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/myrjola/fitnesspro/internal/e2etest"
	"github.com/myrjola/fitnesspro/internal/logging"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
)

// TestBMI saves a BMI as a fresh visitor and checks that the recommendations follow.
func TestBMI(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/bmi")
	if err != nil {
		return fmt.Errorf("get bmi page: %w", err)
	}
	if doc, err = client.SubmitForm(ctx, doc, "/bmi", map[string]string{
		"Weight": "70",
		"Height": "175",
		"Age":    "30",
		"Gender": "male",
	}); err != nil {
		return fmt.Errorf("submit bmi: %w", err)
	}
	if got := e2etest.Text(doc, "#bmi-result .bmi-value"); got != "22.9" {
		return fmt.Errorf("unexpected bmi %q", got)
	}

	if doc, err = client.GetDoc(ctx, "/training"); err != nil {
		return fmt.Errorf("get training page: %w", err)
	}
	if doc.Find("#recommended-plan").Length() == 0 {
		return errors.New("training page has no recommended plan")
	}
	if _, err = client.GetDoc(ctx, "/timer"); err != nil {
		return fmt.Errorf("get timer page: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestBMI(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing bmi", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
