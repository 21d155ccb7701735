// Package pokeapi provides an HTTP client for the public PokeAPI REST service.
//
// # Overview
//
// The client issues single GET requests against two read-only endpoints and
// decodes the JSON responses into typed structs:
//
//   - GET {base}/pokemon?limit=10&offset=0&search={term}: first page of entities
//   - GET {base}/pokemon/{name}: details for one entity
//
// The upstream API ignores the search parameter, so every list request
// returns the same first ten entries. The parameter is still sent so that
// callers keying their caches by search term observe distinct requests.
//
// # Client Usage
//
//	client, err := pokeapi.NewClient("")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	list, err := client.FetchList(ctx, "")
//	if err != nil {
//		log.Printf("list fetch failed: %v", err)
//	}
//
//	mon, err := client.FetchPokemon(ctx, "bulbasaur")
//	if err != nil {
//		log.Printf("detail fetch failed: %v", err)
//	}
//	fmt.Println(mon.FormatHeight(), mon.FormatWeight())
//
// # Request Handling
//
// Every request is a single attempt:
//   - No retries, no backoff
//   - No client-side timeout; cancellation comes from the context only
//   - Accept: application/json and User-Agent: pokedex/0.1 headers
//
// # Error Handling
//
// There is exactly one failure kind, *NetworkError. It is returned for:
//
//   - Transport failures (DNS, connection refused, cancelled context)
//   - Any status outside [200,300)
//   - Bodies that fail to decode as JSON
//
// StatusCode is zero for transport failures. Use errors.As or
// IsNetworkError to recognise the type.
//
// # Sprites
//
// The sprites object is decoded in document order. String values become
// sprites with a URL, null values become sprites without one, and nested
// objects (other, versions) are skipped. Sprites.Present returns the
// renderable subset in document order.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package pokeapi
