package advisor

import (
	"time"
)

// AuthResponse mirrors the payload returned by /users/login and /users/signup.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Message     string `json:"message"`
}

// UserProfile mirrors /users/profile.
type UserProfile struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Gender      string   `json:"gender"`
	DOB         string   `json:"dob"`
	Preferences []string `json:"preferences"`
}

// ParsedDOB returns the date of birth as time.Time when possible.
func (p UserProfile) ParsedDOB() time.Time {
	return parseTime(p.DOB)
}

// ClothingItem describes a wardrobe entry in transport-friendly form.
type ClothingItem struct {
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Path        string  `json:"path"`
	Available   bool    `json:"available"`
	Frequency   float64 `json:"frequency"`
	CreatedAt   string  `json:"created_at"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (c ClothingItem) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

// ImageRef returns the best reference for the item's picture: the on-device
// path when the backend echoes one, otherwise the server-relative image path.
func (c ClothingItem) ImageRef() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Image
}

// Outfit mirrors entries returned by /outfits/generate and /outfits/build.
type Outfit struct {
	ID            string         `json:"_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	StylingTips   string         `json:"styling_tips"`
	ClothingItems []ClothingItem `json:"clothing_items_list"`
	IsUsed        bool           `json:"isUsed"`
}

// GenerateRequest carries the inputs for /outfits/generate. DayDescription is
// optional; the backend treats an absent value as "no plans given".
type GenerateRequest struct {
	WeatherDescription string  `json:"weather_description"`
	Temperature        float64 `json:"temperature"`
	DayDescription     string  `json:"day_description,omitempty"`
}

// BuildRequest carries the inputs for /outfits/build. BaseItemIDs constrains
// generation to outfits containing every listed wardrobe item.
type BuildRequest struct {
	WeatherDescription string   `json:"weather_description"`
	Temperature        float64  `json:"temperature"`
	DayDescription     string   `json:"day_description,omitempty"`
	BaseItemIDs        []string `json:"base_items_ids"`
}

// ProfileUpdate carries the writable profile fields for PUT /users/profile.
type ProfileUpdate struct {
	Name        string   `json:"name"`
	Gender      string   `json:"gender"`
	DOB         string   `json:"dob"`
	Preferences []string `json:"preferences"`
}

// SignupRequest carries the inputs for /users/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
}

// Weather mirrors the payload returned by /get_weather.
type Weather struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
}

// messageResponse captures the generic {"message": ...} acknowledgement the
// backend returns for mutations.
type messageResponse struct {
	Message string `json:"message"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
