package kitsu

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Family identifies a resource collection on the API
type Family string

const (
	// FamilyAnime is the anime collection
	FamilyAnime Family = "anime"
	// FamilyManga is the manga collection
	FamilyManga Family = "manga"
	// FamilyUsers is the user collection
	FamilyUsers Family = "users"
	// FamilyCharacters is the character collection
	FamilyCharacters Family = "characters"
	// FamilyProducers is the producer collection
	FamilyProducers Family = "producers"
)

// Families lists every supported resource family
var Families = []Family{FamilyAnime, FamilyManga, FamilyUsers, FamilyCharacters, FamilyProducers}

// ParseFamily resolves a family name, accepting singular forms as well
func ParseFamily(name string) (Family, error) {
	switch name {
	case "anime":
		return FamilyAnime, nil
	case "manga":
		return FamilyManga, nil
	case "user", "users":
		return FamilyUsers, nil
	case "character", "characters":
		return FamilyCharacters, nil
	case "producer", "producers":
		return FamilyProducers, nil
	default:
		return "", fmt.Errorf("unknown resource family: %s", name)
	}
}

// Path returns the collection path segment, e.g. "/anime"
func (f Family) Path() string {
	return "/" + string(f)
}

// ItemPath returns the path of a single resource, e.g. "/anime/1"
func (f Family) ItemPath(id uint64) string {
	return f.Path() + "/" + strconv.FormatUint(id, 10)
}

// Response is the top-level JSON:API document. Data holds either a single
// resource or a slice of resources.
type Response[T any] struct {
	Data     T          `json:"data"`
	Included []Included `json:"included,omitempty"`
	Links    Links      `json:"links,omitempty"`
	Meta     Meta       `json:"meta,omitempty"`
}

// Links holds document or resource links
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

// Meta holds document metadata
type Meta struct {
	Count int `json:"count,omitempty"`
}

// Included is a side-loaded resource of any type. Attributes are left raw
// since their shape depends on Type.
type Included struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Links      Links           `json:"links,omitempty"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// Relationship is a JSON:API relationship object
type Relationship struct {
	Links RelationshipLinks `json:"links"`
	Data  json.RawMessage   `json:"data,omitempty"`
}

// RelationshipLinks are the links of a relationship
type RelationshipLinks struct {
	Self    string `json:"self,omitempty"`
	Related string `json:"related,omitempty"`
}

// Titles holds localized titles
type Titles struct {
	En   string `json:"en,omitempty"`
	EnJp string `json:"en_jp,omitempty"`
	JaJp string `json:"ja_jp,omitempty"`
}

// Image holds an image in its available sizes
type Image struct {
	Tiny     string `json:"tiny,omitempty"`
	Small    string `json:"small,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Large    string `json:"large,omitempty"`
	Original string `json:"original,omitempty"`
}

// Largest returns the biggest available image URL
func (i *Image) Largest() string {
	for _, u := range []string{i.Original, i.Large, i.Medium, i.Small, i.Tiny} {
		if u != "" {
			return u
		}
	}
	return ""
}

// MediaAttributes are the attributes shared by anime and manga
type MediaAttributes struct {
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	Slug                string            `json:"slug"`
	Synopsis            string            `json:"synopsis"`
	Titles              Titles            `json:"titles"`
	CanonicalTitle      string            `json:"canonicalTitle"`
	AbbreviatedTitles   []string          `json:"abbreviatedTitles,omitempty"`
	AverageRating       *string           `json:"averageRating,omitempty"`
	RatingFrequencies   map[string]string `json:"ratingFrequencies,omitempty"`
	UserCount           int               `json:"userCount"`
	FavoritesCount      int               `json:"favoritesCount"`
	StartDate           string            `json:"startDate,omitempty"`
	EndDate             string            `json:"endDate,omitempty"`
	NextRelease         *string           `json:"nextRelease,omitempty"`
	PopularityRank      *int              `json:"popularityRank,omitempty"`
	RatingRank          *int              `json:"ratingRank,omitempty"`
	AgeRating           string            `json:"ageRating,omitempty"`
	AgeRatingGuide      string            `json:"ageRatingGuide,omitempty"`
	Subtype             string            `json:"subtype"`
	Status              string            `json:"status"`
	Tba                 *string           `json:"tba,omitempty"`
	PosterImage         *Image            `json:"posterImage,omitempty"`
	CoverImage          *Image            `json:"coverImage,omitempty"`
	CoverImageTopOffset int               `json:"coverImageTopOffset"`
}

// Title returns the best available title for display
func (m *MediaAttributes) Title() string {
	if m.Titles.En != "" {
		return m.Titles.En
	}
	if m.Titles.EnJp != "" {
		return m.Titles.EnJp
	}
	if m.CanonicalTitle != "" {
		return m.CanonicalTitle
	}
	return m.Titles.JaJp
}

// Rating returns the average rating as a number on a 0-100 scale
func (m *MediaAttributes) Rating() (float64, bool) {
	if m.AverageRating == nil || *m.AverageRating == "" {
		return 0, false
	}
	rating, err := strconv.ParseFloat(*m.AverageRating, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

// Year returns the year of the start date, or 0 when unknown
func (m *MediaAttributes) Year() int {
	if len(m.StartDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.StartDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// AnimeAttributes are the attributes of an anime
type AnimeAttributes struct {
	MediaAttributes
	EpisodeCount   *int   `json:"episodeCount,omitempty"`
	EpisodeLength  *int   `json:"episodeLength,omitempty"`
	TotalLength    *int   `json:"totalLength,omitempty"`
	YoutubeVideoID string `json:"youtubeVideoId,omitempty"`
	ShowType       string `json:"showType,omitempty"`
	NSFW           bool   `json:"nsfw"`
}

// Anime is an anime resource
type Anime struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Links         Links                   `json:"links"`
	Attributes    AnimeAttributes         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

func (a Anime) validate() error { return requireIdentity(a.ID, a.Type) }

// MangaAttributes are the attributes of a manga
type MangaAttributes struct {
	MediaAttributes
	ChapterCount  *int   `json:"chapterCount,omitempty"`
	VolumeCount   *int   `json:"volumeCount,omitempty"`
	Serialization string `json:"serialization,omitempty"`
	MangaType     string `json:"mangaType,omitempty"`
}

// Manga is a manga resource
type Manga struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Links         Links                   `json:"links"`
	Attributes    MangaAttributes         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

func (m Manga) validate() error { return requireIdentity(m.ID, m.Type) }

// UserAttributes are the public attributes of a user profile
type UserAttributes struct {
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug,omitempty"`
	PastNames        []string  `json:"pastNames,omitempty"`
	About            string    `json:"about,omitempty"`
	Location         string    `json:"location,omitempty"`
	WaifuOrHusbando  string    `json:"waifuOrHusbando,omitempty"`
	FollowersCount   int       `json:"followersCount"`
	FollowingCount   int       `json:"followingCount"`
	LifeSpentOnAnime int       `json:"lifeSpentOnAnime"`
	Birthday         string    `json:"birthday,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	CommentsCount    int       `json:"commentsCount"`
	FavoritesCount   int       `json:"favoritesCount"`
	LikesGivenCount  int       `json:"likesGivenCount"`
	ReviewsCount     int       `json:"reviewsCount"`
	PostsCount       int       `json:"postsCount"`
	RatingsCount     int       `json:"ratingsCount"`
	ProExpiresAt     *string   `json:"proExpiresAt,omitempty"`
	Title            string    `json:"title,omitempty"`
	ProfileCompleted bool      `json:"profileCompleted"`
	FeedCompleted    bool      `json:"feedCompleted"`
	Website          string    `json:"website,omitempty"`
	Avatar           *Image    `json:"avatar,omitempty"`
	CoverImage       *Image    `json:"coverImage,omitempty"`
	RatingSystem     string    `json:"ratingSystem,omitempty"`
	Theme            string    `json:"theme,omitempty"`
}

// GetDisplayName returns the best available name for the user
func (u *UserAttributes) GetDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Slug
}

// User is a user resource
type User struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Links         Links                   `json:"links"`
	Attributes    UserAttributes          `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

func (u User) validate() error { return requireIdentity(u.ID, u.Type) }

// CharacterAttributes are the attributes of a character
type CharacterAttributes struct {
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Slug          string    `json:"slug"`
	Names         Titles    `json:"names"`
	CanonicalName string    `json:"canonicalName"`
	OtherNames    []string  `json:"otherNames,omitempty"`
	Name          string    `json:"name,omitempty"`
	MalID         *int      `json:"malId,omitempty"`
	Description   string    `json:"description,omitempty"`
	Image         *Image    `json:"image,omitempty"`
}

// GetDisplayName returns the best available name for the character
func (c *CharacterAttributes) GetDisplayName() string {
	if c.CanonicalName != "" {
		return c.CanonicalName
	}
	if c.Name != "" {
		return c.Name
	}
	if c.Names.En != "" {
		return c.Names.En
	}
	return c.Names.JaJp
}

// Character is a character resource
type Character struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Links         Links                   `json:"links"`
	Attributes    CharacterAttributes     `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

func (c Character) validate() error { return requireIdentity(c.ID, c.Type) }

// ProducerAttributes are the attributes of a producer
type ProducerAttributes struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
}

// Producer is a producer (studio, licensor) resource
type Producer struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Links         Links                   `json:"links"`
	Attributes    ProducerAttributes      `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

func (p Producer) validate() error { return requireIdentity(p.ID, p.Type) }

// resource is satisfied by every decodable resource type
type resource interface {
	Anime | Manga | User | Character | Producer
	validate() error
}

func requireIdentity(id, typ string) error {
	if id == "" {
		return fmt.Errorf("resource is missing required field %q", "id")
	}
	if typ == "" {
		return fmt.Errorf("resource %s is missing required field %q", id, "type")
	}
	return nil
}
