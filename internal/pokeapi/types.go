package pokeapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ListResult mirrors the payload returned by /pokemon.
type ListResult struct {
	Results []NamedResource `json:"results"`
}

// Names returns the entity names in response order.
func (l ListResult) Names() []string {
	if len(l.Results) == 0 {
		return nil
	}
	names := make([]string, len(l.Results))
	for i, r := range l.Results {
		names[i] = r.Name
	}
	return names
}

// NamedResource is a reference to another API resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon mirrors the subset of /pokemon/{name} the UI renders.
type Pokemon struct {
	Name    string  `json:"name"`
	Height  int     `json:"height"` // decimeters
	Weight  int     `json:"weight"` // hectograms
	Sprites Sprites `json:"sprites"`
}

// HeightCentimeters converts the API's decimeters to centimeters.
func (p Pokemon) HeightCentimeters() int {
	return p.Height * 10
}

// WeightKilograms converts the API's hectograms to kilograms.
func (p Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// FormatHeight renders the height as "70 cm".
func (p Pokemon) FormatHeight() string {
	return strconv.Itoa(p.HeightCentimeters()) + " cm"
}

// FormatWeight renders the weight as "6.9 kg" using the shortest decimal form.
func (p Pokemon) FormatWeight() string {
	return strconv.FormatFloat(p.WeightKilograms(), 'f', -1, 64) + " kg"
}

// Sprite is one entry of the sprites object. URL is nil when the API
// reported null for the label.
type Sprite struct {
	Label string
	URL   *string
}

// Sprites keeps the sprites object in document order.
type Sprites []Sprite

// Present returns the sprites with a URL, preserving order.
func (s Sprites) Present() []Sprite {
	out := make([]Sprite, 0, len(s))
	for _, sp := range s {
		if sp.URL != nil {
			out = append(out, sp)
		}
	}
	return out
}

// URLs returns the non-null sprite URLs in order.
func (s Sprites) URLs() []string {
	present := s.Present()
	urls := make([]string, len(present))
	for i, sp := range present {
		urls[i] = *sp.URL
	}
	return urls
}

// UnmarshalJSON decodes a JSON object without losing key order. Values that
// are neither strings nor null are skipped.
func (s *Sprites) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("sprites: %w", err)
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sprites: expected object, got %v", tok)
	}

	var out Sprites
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("sprites: %w", err)
		}
		label, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("sprites %q: %w", label, err)
		}
		raw = bytes.TrimSpace(raw)
		switch {
		case bytes.Equal(raw, []byte("null")):
			out = append(out, Sprite{Label: label})
		case len(raw) > 0 && raw[0] == '"':
			var u string
			if err := json.Unmarshal(raw, &u); err != nil {
				return fmt.Errorf("sprites %q: %w", label, err)
			}
			out = append(out, Sprite{Label: label, URL: &u})
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("sprites: %w", err)
	}
	*s = out
	return nil
}

// NetworkError is the single failure kind of the client: a transport
// failure, a non-2xx status, or an undecodable body.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("GET %s: response not OK (status %d)", e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
