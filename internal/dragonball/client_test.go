package dragonball

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/olgasafonova/dragonball-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/dragonball-mcp-server/internal/errors"
)

func TestNewClient(t *testing.T) {
	client := NewClient()
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	defer client.Close()

	if client.HTTPClient == nil {
		t.Error("HTTPClient is nil")
	}
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
	if client.HTTPClient.Timeout != base.DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.HTTPClient.Timeout, base.DefaultTimeout)
	}
}

func TestNewClientWithOptions(t *testing.T) {
	customHTTPClient := &http.Client{Timeout: 60 * time.Second}
	client := NewClient(WithHTTPClient(customHTTPClient), WithUserAgent("goku/1.0"))
	defer client.Close()

	if client.HTTPClient != customHTTPClient {
		t.Error("custom HTTP client was not set")
	}
	if client.UserAgent != "goku/1.0" {
		t.Errorf("UserAgent = %q, want goku/1.0", client.UserAgent)
	}

	timed := NewClient(WithTimeout(5 * time.Second))
	defer timed.Close()
	if timed.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", timed.HTTPClient.Timeout)
	}
}

func TestWithBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "http://localhost:8080/api", "http://localhost:8080/api"},
		{"trailing slash", "http://localhost:8080/api/", "http://localhost:8080/api"},
		{"empty keeps default", "", DefaultBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient().WithBaseURL(tt.input)
			defer client.Close()
			if client.BaseURL() != tt.want {
				t.Errorf("BaseURL = %q, want %q", client.BaseURL(), tt.want)
			}
		})
	}
}

func TestListCharacters_QueryParameters(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, listingPage2JSON)
	client := api.client()
	defer client.Close()

	page, err := client.ListCharacters(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListCharacters failed: %v", err)
	}

	u, err := url.Parse(api.requestURI())
	if err != nil {
		t.Fatalf("bad request URI: %v", err)
	}
	if u.Path != "/characters" {
		t.Errorf("path = %q, want /characters", u.Path)
	}
	if got := u.Query().Get("page"); got != "2" {
		t.Errorf("page = %q, want 2", got)
	}
	if got := u.Query().Get("limit"); got != "10" {
		t.Errorf("limit = %q, want 10", got)
	}
	if page.RequestedPage() != 2 {
		t.Errorf("RequestedPage = %d, want 2", page.RequestedPage())
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Gohan" {
		t.Errorf("unexpected items: %+v", page.Items)
	}
	if page.Meta.TotalItems != 58 {
		t.Errorf("TotalItems = %d, want 58", page.Meta.TotalItems)
	}
}

func TestGetCharacter_Path(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, gokuDetailJSON)
	client := api.client()
	defer client.Close()

	detail, err := client.GetCharacter(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCharacter failed: %v", err)
	}
	if api.requestURI() != "/characters/1" {
		t.Errorf("request URI = %q, want /characters/1", api.requestURI())
	}
	if detail.Name != "Goku" {
		t.Errorf("Name = %q, want Goku", detail.Name)
	}
	if detail.OriginPlanet != nil {
		t.Errorf("OriginPlanet = %+v, want nil", detail.OriginPlanet)
	}
	if len(detail.Transformations) != 1 {
		t.Errorf("Transformations = %d, want 1", len(detail.Transformations))
	}
}

func TestGetCharacter_RawPassthrough(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, vegetaDetailJSON)
	client := api.client()
	defer client.Close()

	detail, err := client.GetCharacter(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetCharacter failed: %v", err)
	}

	if string(detail.Raw()) != vegetaDetailJSON {
		t.Errorf("detail body differs from upstream body\n got: %s\nwant: %s", detail.Raw(), vegetaDetailJSON)
	}
}

func TestGetCharacter_NotFound(t *testing.T) {
	api := newFakeAPI(t, http.StatusNotFound, `{"message":"Character not found","error":"Not Found","statusCode":404}`)
	client := api.client()
	defer client.Close()

	_, err := client.GetCharacter(context.Background(), 9999)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !apierrors.IsUpstreamHTTP(err) {
		t.Errorf("expected UpstreamHTTPError, got %T", err)
	}
	if apierrors.StatusCode(err) != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apierrors.StatusCode(err))
	}
	if api.hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", api.hits.Load())
	}
}

func TestListCharacters_MalformedBody(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `<html>maintenance</html>`)
	client := api.client()
	defer client.Close()

	_, err := client.ListCharacters(context.Background(), 1, 10)
	if !apierrors.IsTransport(err) {
		t.Errorf("expected TransportError, got %v", err)
	}
}
