package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const bulbasaurJSON = `{
  "name": "bulbasaur",
  "height": 7,
  "weight": 69,
  "sprites": {
    "front_default": "https://img/1.png",
    "back_default": null,
    "front_shiny": "https://img/1s.png",
    "other": {"home": {"front_default": "https://img/home.png"}}
  }
}`

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	got, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got != DefaultBaseURL {
		t.Fatalf("parseBaseURL(\"\") = %q, want %q", got, DefaultBaseURL)
	}

	got, err = parseBaseURL("http://example.com:1234/api/v2/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got != "http://example.com:1234/api/v2" {
		t.Fatalf("url not normalized: %q", got)
	}

	got, err = parseBaseURL("  pokeapi.co/api/v2  ")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got != "https://pokeapi.co/api/v2" {
		t.Fatalf("scheme not defaulted: %q", got)
	}
}

func TestParseBaseURL_RejectsMissingHost(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_URLs(t *testing.T) {
	c, err := NewClient("https://pokeapi.co/api/v2/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if got, want := c.ListURL("pika"), "https://pokeapi.co/api/v2/pokemon?limit=10&offset=0&search=pika"; got != want {
		t.Fatalf("ListURL = %q, want %q", got, want)
	}
	if got, want := c.ListURL(""), "https://pokeapi.co/api/v2/pokemon?limit=10&offset=0&search="; got != want {
		t.Fatalf("ListURL(empty) = %q, want %q", got, want)
	}
	if got, want := c.DetailURL("mr mime"), "https://pokeapi.co/api/v2/pokemon/mr%20mime"; got != want {
		t.Fatalf("DetailURL = %q, want %q", got, want)
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotListQuery url.Values
	var gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v2/pokemon":
			gotListQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{"results":[{"name":"bulbasaur","url":"u1"},{"name":"ivysaur","url":"u2"}]}`))
		case "/api/v2/pokemon/bulbasaur":
			_, _ = w.Write([]byte(bulbasaurJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v2")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.FetchList(ctx, "bulb")
	if err != nil {
		t.Fatalf("FetchList returned error: %v", err)
	}
	if names := list.Names(); len(names) != 2 || names[0] != "bulbasaur" || names[1] != "ivysaur" {
		t.Fatalf("FetchList names = %v, want [bulbasaur ivysaur]", names)
	}
	if gotListQuery.Get("limit") != "10" ||
		gotListQuery.Get("offset") != "0" ||
		gotListQuery.Get("search") != "bulb" {
		t.Fatalf("FetchList query = %v, want limit/offset/search encoded", gotListQuery)
	}

	mon, err := c.FetchPokemon(ctx, "bulbasaur")
	if err != nil {
		t.Fatalf("FetchPokemon returned error: %v", err)
	}
	if mon.Name != "bulbasaur" || mon.Height != 7 || mon.Weight != 69 {
		t.Fatalf("FetchPokemon payload = %#v, want bulbasaur 7/69", mon)
	}
	if urls := mon.Sprites.URLs(); len(urls) != 2 {
		t.Fatalf("sprite urls = %v, want 2", urls)
	}

	if !strings.HasPrefix(gotUserAgent, "pokedex/") {
		t.Fatalf("User-Agent = %q, want pokedex/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClient_FetchPokemonRequiresName(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchPokemon(context.Background(), "  ")
	if !IsNetworkError(err) || !errors.Is(err, errNameRequired) {
		t.Fatalf("FetchPokemon error = %v, want NetworkError wrapping errNameRequired", err)
	}
}

func TestClient_NilClientIsNetworkError(t *testing.T) {
	var c *Client
	if _, err := c.FetchList(context.Background(), ""); !IsNetworkError(err) || !errors.Is(err, errNilClient) {
		t.Fatalf("FetchList error = %v, want NetworkError wrapping errNilClient", err)
	}
	if _, err := c.FetchPokemon(context.Background(), "bulbasaur"); !IsNetworkError(err) {
		t.Fatalf("FetchPokemon error = %v, want NetworkError", err)
	}
}

func TestClient_FailuresAreNetworkErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/pokemon/missingno":
			http.NotFound(w, r)
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchList(context.Background(), "")
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("FetchList error = %v, want *NetworkError", err)
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchList error = %v, want decode response error", err)
	}

	_, err = c.FetchPokemon(context.Background(), "missingno")
	if !errors.As(err, &ne) {
		t.Fatalf("FetchPokemon error = %v, want *NetworkError", err)
	}
	if ne.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode = %d, want 404", ne.StatusCode)
	}
	if !strings.Contains(err.Error(), "response not OK") {
		t.Fatalf("FetchPokemon error = %q, want it to mention response not OK", err.Error())
	}

	err = c.Get(context.Background(), server.URL+"/boom", nil)
	if !IsNetworkError(err) {
		t.Fatalf("Get error = %v, want *NetworkError for status 500", err)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchList(context.Background(), "")
	if !IsNetworkError(err) {
		t.Fatalf("FetchList error = %v, want *NetworkError", err)
	}
	var ne *NetworkError
	if errors.As(err, &ne) && ne.StatusCode != 0 {
		t.Fatalf("StatusCode = %d, want 0 for transport failure", ne.StatusCode)
	}
}

func TestClient_SingleAttemptPerCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchList(context.Background(), ""); err == nil {
		t.Fatalf("FetchList returned nil error, want error")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("server saw %d requests, want 1", n)
	}
}

func TestClient_Options(t *testing.T) {
	hc := &http.Client{}
	c, err := NewClient("", WithHTTPClient(hc), WithUserAgent("custom/1"), WithUserAgent("  "))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http != hc {
		t.Fatalf("WithHTTPClient not applied")
	}
	if c.userAgent != "custom/1" {
		t.Fatalf("userAgent = %q, want custom/1", c.userAgent)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
}
