package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/kitsu/kitsu"
	"github.com/s0up4200/kitsu/match"
)

// one flattens a single-resource response
func one[T any](resp *kitsu.Response[T], err error, convert func(T) match.Item) (match.Item, error) {
	if err != nil {
		return match.Item{}, err
	}
	return convert(resp.Data), nil
}

// many flattens a collection response
func many[T any](resp *kitsu.Response[[]T], err error, convert func(T) match.Item) ([]match.Item, error) {
	if err != nil {
		return nil, err
	}
	return lo.Map(resp.Data, func(r T, _ int) match.Item { return convert(r) }), nil
}

// fetchOne gets a single resource of family by id
func fetchOne(ctx context.Context, r kitsu.Requester, family kitsu.Family, id uint64) (match.Item, error) {
	switch family {
	case kitsu.FamilyAnime:
		resp, err := r.GetAnime(ctx, id)
		return one(resp, err, match.ItemFromAnime)
	case kitsu.FamilyManga:
		resp, err := r.GetManga(ctx, id)
		return one(resp, err, match.ItemFromManga)
	case kitsu.FamilyUsers:
		resp, err := r.GetUser(ctx, id)
		return one(resp, err, match.ItemFromUser)
	case kitsu.FamilyCharacters:
		resp, err := r.GetCharacter(ctx, id)
		return one(resp, err, match.ItemFromCharacter)
	case kitsu.FamilyProducers:
		resp, err := r.GetProducer(ctx, id)
		return one(resp, err, match.ItemFromProducer)
	default:
		return match.Item{}, fmt.Errorf("unknown resource family: %s", family)
	}
}

// fetchAll gets every id concurrently, at most concurrency at a time.
// Results keep the order of ids.
func fetchAll(ctx context.Context, r kitsu.Requester, family kitsu.Family, ids []uint64, concurrency int) ([]match.Item, error) {
	results := make([]match.Item, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, id := range ids {
		g.Go(func() error {
			item, err := fetchOne(ctx, r, family, id)
			if err != nil {
				return fmt.Errorf("%s %d: %w", family, id, err)
			}
			results[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// searchFamily runs a search against family
func searchFamily(ctx context.Context, r kitsu.Requester, family kitsu.Family, configure kitsu.SearchFunc) ([]match.Item, error) {
	switch family {
	case kitsu.FamilyAnime:
		resp, err := r.SearchAnime(ctx, configure)
		return many(resp, err, match.ItemFromAnime)
	case kitsu.FamilyManga:
		resp, err := r.SearchManga(ctx, configure)
		return many(resp, err, match.ItemFromManga)
	case kitsu.FamilyUsers:
		resp, err := r.SearchUsers(ctx, configure)
		return many(resp, err, match.ItemFromUser)
	case kitsu.FamilyCharacters:
		resp, err := r.SearchCharacters(ctx, configure)
		return many(resp, err, match.ItemFromCharacter)
	case kitsu.FamilyProducers:
		resp, err := r.SearchProducers(ctx, configure)
		return many(resp, err, match.ItemFromProducer)
	default:
		return nil, fmt.Errorf("unknown resource family: %s", family)
	}
}

// parseIDs parses resource ids, rejecting duplicates
func parseIDs(args []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: must be a non-negative integer", arg)
		}
		ids = append(ids, id)
	}

	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		return nil, fmt.Errorf("duplicate id: %d", dups[0])
	}

	return ids, nil
}
