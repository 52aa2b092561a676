package main

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/myrjola/fitnesspro/internal/e2etest"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
)

func Test_application_crossOriginProtection(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	crossSite, err := e2etest.NewClientWithSecFetchSite(server.URL(), "cross-site")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	form := url.Values{"weight": {"70"}, "height": {"175"}, "age": {"30"}, "gender": {"male"}}
	if _, err = crossSite.PostForm(ctx, "/bmi", form, http.StatusForbidden); err != nil {
		t.Errorf("Expected cross-site POST to be forbidden: %v", err)
	}
	if _, err = crossSite.PostForm(ctx, "/theme/toggle", nil, http.StatusForbidden); err != nil {
		t.Errorf("Expected cross-site theme toggle to be forbidden: %v", err)
	}
	// Safe methods pass.
	if _, err = crossSite.GetDoc(ctx, "/bmi"); err != nil {
		t.Errorf("Expected cross-site GET to succeed: %v", err)
	}

	sameOrigin, err := e2etest.NewClientWithSecFetchSite(server.URL(), "same-origin")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	doc, err := sameOrigin.PostForm(ctx, "/bmi", form, http.StatusOK)
	if err != nil {
		t.Fatalf("Expected same-origin POST to succeed: %v", err)
	}
	if got := e2etest.Text(doc, "#bmi-result .bmi-value"); got != "22.9" {
		t.Errorf("Expected BMI 22.9, got %q", got)
	}
}

func Test_application_secureHeaders(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	resp, err := server.Client().Get(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	csp := resp.Header.Get("Content-Security-Policy")
	start := strings.Index(csp, "'nonce-")
	if start < 0 {
		t.Fatalf("Expected a nonce in the CSP, got %q", csp)
	}
	nonce := csp[start+len("'nonce-"):]
	nonce = nonce[:strings.Index(nonce, "'")]
	if !strings.Contains(string(body), `nonce="`+nonce+`"`) {
		t.Error("Expected the inline script to carry the CSP nonce")
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "deny",
		"Cache-Control":          "no-cache, no-store, must-revalidate",
	} {
		if got := resp.Header.Get(header); got != want {
			t.Errorf("Expected %s %q, got %q", header, want, got)
		}
	}
}

func Test_application_metrics(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()
	submitBMI(t, client, "70", "175")

	resp, err := client.Get(ctx, "/metrics")
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics: %v", err)
	}
	for _, want := range []string{
		`fitnesspro_web_bmi_submissions{category="normal"} 1`,
		`fitnesspro_web_request{method="POST",status="303"}`,
		"fitnesspro_web_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected metrics to contain %q", want)
		}
	}
}
