// Package kitsu provides a client for the Kitsu media-catalog API.
//
// Kitsu serves anime, manga, users, characters and producers as JSON:API
// documents from https://kitsu.io/api/edge. This package builds request URLs,
// issues one GET per operation and decodes the document into typed resources.
//
// # Backends
//
// Two interchangeable backends share the same URL building, status
// classification and decoding:
//
//   - Client: blocking. Each method returns the decoded Response or an error.
//   - AsyncClient: non-blocking. Each method returns a Future immediately;
//     the exchange runs on its own goroutine and the body is read in chunks.
//
// Given identical responses both produce equal results and equal errors.
// AsyncClient.Blocking adapts the asynchronous backend to Requester.
//
// # Usage
//
//	client := kitsu.NewClient(
//		kitsu.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
//		kitsu.WithLogger(logger),
//	)
//
//	anime, err := client.SearchAnime(ctx, func(s query.Search) query.Search {
//		return s.Where("text", "beyond the boundary").Limit(5)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, a := range anime.Data {
//		fmt.Println(a.Attributes.CanonicalTitle)
//	}
//
//	future := kitsu.NewAsyncClient().GetManga(ctx, 1)
//	// ... do other work ...
//	manga, err := future.Wait()
//
// The context governs the exchange and the body read in both backends, and
// a context that is already done fails the call as KindTransport. A nil
// context is treated as context.Background().
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind:
//
//   - KindInvalidURL: the target did not parse; no request was sent
//   - KindTransport: the exchange or body read failed
//   - KindBadRequest, KindUnauthorized: status 400 and 401
//   - KindUnexpectedStatus: any other non-200 status
//   - KindDecode: a 200 body was not a valid document
//
// Status errors carry the full RawResponse. Kinds match their sentinels:
//
//	if errors.Is(err, kitsu.ErrUnauthorized) {
//		// Handle auth failure
//	}
//
// Nothing is retried, cached or logged at error level inside this package.
package kitsu
