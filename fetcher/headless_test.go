package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"huskykennel-scraper/sources"
)

// Runs only where a Chrome/Chromium binary is installed.
func TestHeadlessFetchRendersClientSideContent(t *testing.T) {
	f := NewHeadless(30*time.Second, 200*time.Millisecond, "TestBot/1.0", "")
	if f.binary() == "" {
		t.Skip("no Chrome/Chromium binary available")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<div id="plans"></div>
			<script>
				document.getElementById("plans").innerHTML =
					'<div class="plan-name">rendered-client-side</div>';
			</script>
		</body></html>`))
	}))
	defer srv.Close()

	src := sources.SourceConfig{
		Name:     "headless-test",
		Endpoint: srv.URL,
		Strategy: sources.FetchHeadless,
	}

	raw, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(string(raw.Body), "rendered-client-side") {
		t.Error("rendered DOM should contain the client-side content")
	}
	if raw.FetchedURL != srv.URL {
		t.Errorf("FetchedURL = %q, want %q", raw.FetchedURL, srv.URL)
	}
}
