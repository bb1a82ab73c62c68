package kitsu

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// stubDoer implements Doer with a canned response
type stubDoer struct {
	status int
	header http.Header
	body   []byte
	err    error

	// Track calls for verification
	mu    sync.Mutex
	calls int
	urls  []string
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.calls++
	s.urls = append(s.urls, req.URL.String())
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	header := s.header
	if header == nil {
		header = http.Header{"Content-Type": {"application/vnd.api+json"}}
	}

	return &http.Response{
		StatusCode:    s.status,
		Status:        fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(s.body)),
		ContentLength: int64(len(s.body)),
		Request:       req,
	}, nil
}

func (s *stubDoer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubDoer) lastURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.urls) == 0 {
		return ""
	}
	return s.urls[len(s.urls)-1]
}

// failingBody fails after yielding some bytes
type failingBody struct {
	data []byte
	read bool
}

func (b *failingBody) Read(p []byte) (int, error) {
	if !b.read {
		b.read = true
		return copy(p, b.data), nil
	}
	return 0, io.ErrUnexpectedEOF
}

func (b *failingBody) Close() error { return nil }

type failingBodyDoer struct{}

func (failingBodyDoer) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{},
		Body:       &failingBody{data: []byte(`{"data":`)},
		Request:    req,
	}, nil
}

const animeJSON = `{
  "data": {
    "id": "1",
    "type": "anime",
    "links": {"self": "https://kitsu.io/api/edge/anime/1"},
    "attributes": {
      "createdAt": "2013-02-20T16:00:13.609Z",
      "updatedAt": "2024-05-01T12:00:00.000Z",
      "slug": "cowboy-bebop",
      "synopsis": "In the year 2071...",
      "titles": {"en": "Cowboy Bebop", "en_jp": "Cowboy Bebop", "ja_jp": "カウボーイビバップ"},
      "canonicalTitle": "Cowboy Bebop",
      "abbreviatedTitles": ["COWBOY BEBOP"],
      "averageRating": "82.29",
      "userCount": 120000,
      "favoritesCount": 4500,
      "startDate": "1998-04-03",
      "endDate": "1999-04-24",
      "popularityRank": 28,
      "ratingRank": 25,
      "ageRating": "R",
      "subtype": "TV",
      "status": "finished",
      "posterImage": {"tiny": "t.jpg", "original": "o.jpg"},
      "coverImage": null,
      "episodeCount": 26,
      "episodeLength": 25,
      "showType": "TV",
      "nsfw": false
    },
    "relationships": {
      "genres": {"links": {"self": "https://kitsu.io/api/edge/anime/1/relationships/genres", "related": "https://kitsu.io/api/edge/anime/1/genres"}}
    }
  }
}`

const animeListJSON = `{
  "data": [
    {"id": "7442", "type": "anime", "attributes": {"canonicalTitle": "Attack on Titan", "averageRating": "84.53", "subtype": "TV"}},
    {"id": "8671", "type": "anime", "attributes": {"canonicalTitle": "Attack on Titan Season 2", "averageRating": null, "subtype": "TV"}}
  ],
  "meta": {"count": 2},
  "links": {"first": "https://kitsu.io/api/edge/anime?page%5Blimit%5D=10&page%5Boffset%5D=0"}
}`

const mangaJSON = `{"data": {"id": "1", "type": "manga", "attributes": {"canonicalTitle": "Orange", "chapterCount": 22, "mangaType": "manga"}}}`

const userJSON = `{"data": {"id": "1", "type": "users", "attributes": {"name": "vikhyat", "slug": "vikhyat", "followersCount": 10}}}`

const characterJSON = `{"data": {"id": "1", "type": "characters", "attributes": {"canonicalName": "Hachiman Hikigaya", "slug": "hachiman-hikigaya", "malId": 42}}}`

const producerJSON = `{"data": {"id": "1", "type": "producers", "attributes": {"slug": "sunrise", "name": "Sunrise"}}}`
