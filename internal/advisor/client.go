package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer credential for authenticated requests.
// An empty token means no session is present.
type TokenSource interface {
	Token() string
}

// OutfitService defines the outfit-generation surface of the backend.
// This interface is implemented by *Client and can be used for testing.
type OutfitService interface {
	GenerateOutfits(ctx context.Context, req GenerateRequest) ([]Outfit, error)
	BuildOutfits(ctx context.Context, req BuildRequest) ([]Outfit, error)
	UseOutfit(ctx context.Context, outfitID string) error
}

// Ensure Client implements OutfitService at compile time.
var _ OutfitService = (*Client)(nil)

// ErrSessionExpired reports that the backend rejected the stored credential.
// Callers are expected to clear the session and force re-authentication.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-2xx backend response. Message holds the server's
// own message when one was present, so it can be shown verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api status %d", e.Status)
}

// Client talks to the Drip Advisor backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
	log       zerolog.Logger
}

const (
	defaultBaseURL   = "https://drip-advisor-backend.vercel.app"
	defaultUserAgent = "dripadvisor/0.1"

	// Outfit generation routinely takes tens of seconds; the UI shows a
	// patience notice long before this fires.
	defaultRequestTimeout = 60 * time.Second
)

// NewClient builds a Client for the given backend origin. An empty baseURL
// selects the production backend.
func NewClient(baseURL string, tokens TokenSource, logger zerolog.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		userAgent: defaultUserAgent,
		tokens:    tokens,
		log:       logger,
	}, nil
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &payload, false); err != nil {
		return nil, err
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("login response missing access token")
	}
	return &payload, nil
}

// Signup registers a new account and returns a bearer token on success.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/signup", req, &payload, false); err != nil {
		return nil, err
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("signup response missing access token")
	}
	return &payload, nil
}

// Profile retrieves the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &payload, true); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProfile writes profile fields back and returns the server message.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload messageResponse
	if err := c.do(ctx, http.MethodPut, "/users/profile", update, &payload, true); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// SetPreferences replaces the stored preference list.
func (c *Client) SetPreferences(ctx context.Context, preferences []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if preferences == nil {
		preferences = []string{}
	}
	body := map[string][]string{"preferences": preferences}
	return c.do(ctx, http.MethodPost, "/users/preferences", body, nil, true)
}

// Wardrobe lists the user's clothing items.
func (c *Client) Wardrobe(ctx context.Context) ([]ClothingItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []ClothingItem
	if err := c.do(ctx, http.MethodGet, "/wardrobe", nil, &payload, true); err != nil {
		return nil, err
	}
	return payload, nil
}

// AddClothingItem uploads a clothing photo as a single multipart request.
// The filename and MIME type are derived from the local path.
func (c *Client) AddClothingItem(ctx context.Context, imagePath string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(imagePath)))
	header.Set("Content-Type", ImageMIMEType(imagePath))
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	rel := &url.URL{Path: "/add_clothing_item"}
	var payload messageResponse
	if err := c.doRaw(ctx, http.MethodPost, rel, &buf, writer.FormDataContentType(), &payload, true); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// DeleteClothingItems removes the given wardrobe items.
func (c *Client) DeleteClothingItems(ctx context.Context, itemIDs []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(itemIDs) == 0 {
		return fmt.Errorf("item ids required")
	}
	body := map[string][]string{"item_ids": itemIDs}
	return c.do(ctx, http.MethodDelete, "/clothing_items/delete", body, nil, true)
}

// MarkAvailable flags the given wardrobe items as available again.
func (c *Client) MarkAvailable(ctx context.Context, itemIDs []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(itemIDs) == 0 {
		return fmt.Errorf("item ids required")
	}
	body := map[string][]string{"item_ids": itemIDs}
	return c.do(ctx, http.MethodPut, "/clothing_items/available", body, nil, true)
}

// GenerateOutfits requests outfit suggestions for the given weather and day.
func (c *Client) GenerateOutfits(ctx context.Context, req GenerateRequest) ([]Outfit, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.WeatherDescription) == "" {
		return nil, fmt.Errorf("weather description required")
	}
	var payload []Outfit
	if err := c.do(ctx, http.MethodPost, "/outfits/generate", req, &payload, true); err != nil {
		return nil, err
	}
	return payload, nil
}

// BuildOutfits requests outfits constrained to a user-selected base item set.
func (c *Client) BuildOutfits(ctx context.Context, req BuildRequest) ([]Outfit, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.WeatherDescription) == "" {
		return nil, fmt.Errorf("weather description required")
	}
	if len(req.BaseItemIDs) == 0 {
		return nil, fmt.Errorf("base item ids required")
	}
	var payload []Outfit
	if err := c.do(ctx, http.MethodPost, "/outfits/build", req, &payload, true); err != nil {
		return nil, err
	}
	return payload, nil
}

// UseOutfit marks an outfit as worn. The backend makes its items unavailable
// for the following 48 hours; the client does not enforce that window.
func (c *Client) UseOutfit(ctx context.Context, outfitID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(outfitID) == "" {
		return fmt.Errorf("outfit id required")
	}
	rel := &url.URL{Path: "/outfits/use/" + url.PathEscape(outfitID)}
	return c.doURL(ctx, http.MethodPost, rel, struct{}{}, nil, true)
}

// CityWeather resolves a city name to a weather description and temperature.
func (c *Client) CityWeather(ctx context.Context, city string) (*Weather, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("city required")
	}
	body := map[string]string{"city": city}
	var payload Weather
	if err := c.do(ctx, http.MethodPost, "/get_weather", body, &payload, true); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ImageMIMEType infers the MIME type for an image path from its extension.
func ImageMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	}
	return "application/octet-stream"
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any, authed bool) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest, authed)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any, authed bool) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, rel, reader, contentType, dest, authed)
}

func (c *Client) doRaw(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any, authed bool) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		token := ""
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return ErrSessionExpired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", requestID).Str("method", method).
			Str("path", rel.Path).Err(err).Msg("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().Str("request_id", requestID).Str("method", method).
		Str("path", rel.Path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("request complete")

	if resp.StatusCode >= 400 {
		return c.statusError(rel, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps a non-2xx response to the client error taxonomy. The
// token-expired payload shape comes from the backend's JWT middleware.
func (c *Client) statusError(rel *url.URL, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)

	message := payload.Msg
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = payload.Error
	}

	if resp.StatusCode == http.StatusUnauthorized && isExpiredTokenMessage(message) {
		return ErrSessionExpired
	}
	if message == "" {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

func isExpiredTokenMessage(message string) bool {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "token has expired", "token expired", "signature has expired":
		return true
	}
	return false
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
