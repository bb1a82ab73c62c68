package match

import (
	"github.com/s0up4200/kitsu/kitsu"
)

// Item is the flattened view of a resource that expressions are evaluated against
type Item struct {
	ID         string
	Type       string
	Title      string
	Slug       string
	Subtype    string
	Status     string
	Rating     float64
	HasRating  bool
	NSFW       bool
	Episodes   int
	Chapters   int
	Popularity int
	Favorites  int
	Year       int

	// Resource is the original decoded resource
	Resource any
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func fromMedia(id, typ string, m *kitsu.MediaAttributes) Item {
	item := Item{
		ID:         id,
		Type:       typ,
		Title:      m.Title(),
		Slug:       m.Slug,
		Subtype:    m.Subtype,
		Status:     m.Status,
		Popularity: derefInt(m.PopularityRank),
		Favorites:  m.FavoritesCount,
		Year:       m.Year(),
	}
	item.Rating, item.HasRating = m.Rating()
	return item
}

// ItemFromAnime converts an anime to an Item
func ItemFromAnime(a kitsu.Anime) Item {
	item := fromMedia(a.ID, a.Type, &a.Attributes.MediaAttributes)
	item.NSFW = a.Attributes.NSFW
	item.Episodes = derefInt(a.Attributes.EpisodeCount)
	item.Resource = a
	return item
}

// ItemFromManga converts a manga to an Item
func ItemFromManga(m kitsu.Manga) Item {
	item := fromMedia(m.ID, m.Type, &m.Attributes.MediaAttributes)
	item.Chapters = derefInt(m.Attributes.ChapterCount)
	item.Resource = m
	return item
}

// ItemFromUser converts a user to an Item
func ItemFromUser(u kitsu.User) Item {
	return Item{
		ID:        u.ID,
		Type:      u.Type,
		Title:     u.Attributes.GetDisplayName(),
		Slug:      u.Attributes.Slug,
		Favorites: u.Attributes.FavoritesCount,
		Resource:  u,
	}
}

// ItemFromCharacter converts a character to an Item
func ItemFromCharacter(c kitsu.Character) Item {
	return Item{
		ID:       c.ID,
		Type:     c.Type,
		Title:    c.Attributes.GetDisplayName(),
		Slug:     c.Attributes.Slug,
		Resource: c,
	}
}

// ItemFromProducer converts a producer to an Item
func ItemFromProducer(p kitsu.Producer) Item {
	return Item{
		ID:       p.ID,
		Type:     p.Type,
		Title:    p.Attributes.Name,
		Slug:     p.Attributes.Slug,
		Resource: p,
	}
}
