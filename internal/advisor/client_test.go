package advisor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Host != "drip-advisor-backend.vercel.app" {
		t.Fatalf("host = %q, want production backend", u.Host)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("backend.local:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "backend.local:8080" {
		t.Fatalf("url = %q, want https scheme with host preserved", u.String())
	}
}

func TestClient_LoginPostsCredentialsWithoutBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]string
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok-123"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken(""), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	resp, err := c.Login(context.Background(), "a@b.c", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Fatalf("AccessToken = %q, want tok-123", resp.AccessToken)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty for login", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["email"] != "a@b.c" || gotBody["password"] != "hunter2" {
		t.Fatalf("body = %v, want credentials encoded", gotBody)
	}
}

func TestClient_LoginRejectsMissingToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{Message: "ok but no token"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken(""), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatal("Login returned nil error, want missing-token error")
	}
}

func TestClient_AuthenticatedCallsCarryBearer(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]ClothingItem{{ID: "c1", Description: "blue shirt", Available: true}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok-abc"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	items, err := c.Wardrobe(context.Background())
	if err != nil {
		t.Fatalf("Wardrobe returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "c1" {
		t.Fatalf("Wardrobe items = %#v, want 1 item c1", items)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("X-Request-ID header missing")
	}
}

func TestClient_MissingSessionShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken(""), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Wardrobe(context.Background())
	if err != ErrSessionExpired {
		t.Fatalf("Wardrobe error = %v, want ErrSessionExpired", err)
	}
	if calls != 0 {
		t.Fatalf("server saw %d calls, want 0", calls)
	}
}

func TestClient_ExpiredTokenPayloadMapsToSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"Token has expired"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("stale"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.Profile(context.Background()); err != ErrSessionExpired {
		t.Fatalf("Profile error = %v, want ErrSessionExpired", err)
	}
}

func TestClient_ServerMessageShownVerbatim(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Temperature out of range."}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.GenerateOutfits(context.Background(), GenerateRequest{
		WeatherDescription: "sunny",
		Temperature:        99,
	})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "Temperature out of range." {
		t.Fatalf("APIError = %#v, want status 422 with server message", apiErr)
	}
}

func TestClient_GenerateRequiresWeatherDescription(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.GenerateOutfits(context.Background(), GenerateRequest{Temperature: 33}); err == nil {
		t.Fatal("GenerateOutfits returned nil error, want validation error")
	}
	if _, err := c.BuildOutfits(context.Background(), BuildRequest{Temperature: 33, BaseItemIDs: []string{"a"}}); err == nil {
		t.Fatal("BuildOutfits returned nil error, want validation error")
	}
	if _, err := c.BuildOutfits(context.Background(), BuildRequest{WeatherDescription: "rainy"}); err == nil {
		t.Fatal("BuildOutfits returned nil error, want base-items error")
	}
	if calls != 0 {
		t.Fatalf("server saw %d calls, want 0 for local validation", calls)
	}
}

func TestClient_GenerateAndUseOutfit(t *testing.T) {
	t.Parallel()

	var gotGenerate GenerateRequest
	var gotUsePath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/outfits/generate":
			_ = json.NewDecoder(r.Body).Decode(&gotGenerate)
			_ = json.NewEncoder(w).Encode([]Outfit{
				{ID: "o1", Name: "Casual Friday", ClothingItems: []ClothingItem{{ID: "c1"}}},
			})
		case strings.HasPrefix(r.URL.Path, "/outfits/use/"):
			gotUsePath = r.URL.Path
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "marked"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	outfits, err := c.GenerateOutfits(ctx, GenerateRequest{
		WeatherDescription: "sunny with moderate humidity",
		Temperature:        33,
		DayDescription:     "office day",
	})
	if err != nil {
		t.Fatalf("GenerateOutfits returned error: %v", err)
	}
	if len(outfits) != 1 || outfits[0].ID != "o1" {
		t.Fatalf("outfits = %#v, want 1 outfit o1", outfits)
	}
	if gotGenerate.WeatherDescription != "sunny with moderate humidity" ||
		gotGenerate.Temperature != 33 ||
		gotGenerate.DayDescription != "office day" {
		t.Fatalf("generate body = %#v, want inputs encoded", gotGenerate)
	}

	if err := c.UseOutfit(ctx, "o1"); err != nil {
		t.Fatalf("UseOutfit returned error: %v", err)
	}
	if gotUsePath != "/outfits/use/o1" {
		t.Fatalf("use path = %q, want /outfits/use/o1", gotUsePath)
	}

	if err := c.UseOutfit(ctx, ""); err == nil {
		t.Fatal("UseOutfit returned nil error, want outfit id required")
	}
}

func TestClient_AddClothingItemUploadsMultipart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "blue_shirt.png")
	if err := os.WriteFile(imagePath, []byte("not-a-real-png"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var gotFilename, gotPartType, gotField string
	var gotBytes []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/add_clothing_item" {
			http.NotFound(w, r)
			return
		}
		reader, err := r.MultipartReader()
		if err != nil {
			t.Errorf("multipart reader: %v", err)
			return
		}
		part, err := reader.NextPart()
		if err != nil {
			t.Errorf("next part: %v", err)
			return
		}
		gotField = part.FormName()
		gotFilename = part.FileName()
		gotPartType = part.Header.Get("Content-Type")
		gotBytes, _ = io.ReadAll(part)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Clothing item added."})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticToken("tok"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	msg, err := c.AddClothingItem(context.Background(), imagePath)
	if err != nil {
		t.Fatalf("AddClothingItem returned error: %v", err)
	}
	if msg != "Clothing item added." {
		t.Fatalf("message = %q, want server message", msg)
	}
	if gotField != "image" {
		t.Fatalf("form field = %q, want image", gotField)
	}
	if gotFilename != "blue_shirt.png" {
		t.Fatalf("filename = %q, want blue_shirt.png", gotFilename)
	}
	if gotPartType != "image/png" {
		t.Fatalf("part content type = %q, want image/png", gotPartType)
	}
	if string(gotBytes) != "not-a-real-png" {
		t.Fatalf("uploaded bytes = %q, want file contents", gotBytes)
	}
}

func TestImageMIMEType(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":   "image/jpeg",
		"photo.JPEG":  "image/jpeg",
		"shirt.png":   "image/png",
		"shirt.webp":  "image/webp",
		"mystery.bin": "application/octet-stream",
	}
	for path, want := range cases {
		if got := ImageMIMEType(path); !strings.HasPrefix(got, want) {
			t.Fatalf("ImageMIMEType(%q) = %q, want prefix %q", path, got, want)
		}
	}
}
