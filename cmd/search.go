package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/kitsu/kitsu"
	"github.com/s0up4200/kitsu/match"
	"github.com/s0up4200/kitsu/query"
)

// searchOptions holds the search command flags
type searchOptions struct {
	text    string
	filters []string
	params  []string
	include []string
	sort    []string
	limit   int
	offset  int
	match   string
}

var searchOpts searchOptions

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <family>",
	Short: "Search a resource family",
	Long: `Search a resource family with JSON:API query parameters.

--filter k=v adds filter[k]=v, --param adds raw parameters given as a
query fragment (k=v or k1=v1&k2=v2, percent-escapes allowed).
Both can be repeated and are sent in the order given. --match narrows
the returned page with an expression, e.g. 'rating > 80 and not nsfw'.`,
	Example: `  kitsu search anime --text "cowboy bebop"
  kitsu search manga --filter status=finished --sort -averageRating --limit 5
  kitsu search anime --text titan --match 'subtype == "TV" and year >= 2013'`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchOpts.text, "text", "t", "", "free text search (filter[text])")
	searchCmd.Flags().StringArrayVarP(&searchOpts.filters, "filter", "f", nil, "attribute filter as key=value (repeatable)")
	searchCmd.Flags().StringArrayVar(&searchOpts.params, "param", nil, "raw query parameter as key=value (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchOpts.include, "include", nil, "relationships to side-load")
	searchCmd.Flags().StringSliceVar(&searchOpts.sort, "sort", nil, "sort fields, prefix with - for descending")
	searchCmd.Flags().IntVar(&searchOpts.limit, "limit", 0, "page size")
	searchCmd.Flags().IntVar(&searchOpts.offset, "offset", 0, "page offset")
	searchCmd.Flags().StringVarP(&searchOpts.match, "match", "m", "", "expression the results must match")
}

func runSearch(cmd *cobra.Command, args []string) error {
	family, err := kitsu.ParseFamily(args[0])
	if err != nil {
		return err
	}

	configure, err := buildSearch(searchOpts)
	if err != nil {
		return err
	}

	// Compile before the request so a bad expression costs no round trip
	var matcher *match.Matcher
	if searchOpts.match != "" {
		matcher, err = match.Compile(searchOpts.match)
		if err != nil {
			return fmt.Errorf("invalid match expression: %w", err)
		}
	}

	logger.Debug().Str("family", string(family)).Msg("Searching")

	items, err := searchFamily(cmd.Context(), requester, family, configure)
	if err != nil {
		return err
	}

	if matcher != nil {
		total := len(items)
		items, err = match.Filter(cmd.Context(), matcher, items)
		if err != nil {
			return err
		}
		logger.Debug().Int("total", total).Int("matched", len(items)).Msg("Applied match expression")
	}

	return render(cmd.OutOrStdout(), outputOptions(), family, items)
}

// buildSearch turns the search flags into a SearchFunc
func buildSearch(opts searchOptions) (kitsu.SearchFunc, error) {
	filters, err := parsePairs(opts.filters)
	if err != nil {
		return nil, fmt.Errorf("invalid --filter: %w", err)
	}

	params, err := parseParams(opts.params)
	if err != nil {
		return nil, fmt.Errorf("invalid --param: %w", err)
	}

	if opts.limit < 0 || opts.offset < 0 {
		return nil, fmt.Errorf("--limit and --offset must not be negative")
	}

	return func(s query.Search) query.Search {
		if opts.text != "" {
			s = s.Where("text", opts.text)
		}
		for _, p := range filters {
			s = s.Where(p.Key, p.Value)
		}
		for _, p := range params {
			s = s.Filter(p.Key, p.Value)
		}
		if len(opts.include) > 0 {
			s = s.Include(opts.include...)
		}
		if len(opts.sort) > 0 {
			s = s.Sort(opts.sort...)
		}
		if opts.limit > 0 {
			s = s.Limit(opts.limit)
		}
		if opts.offset > 0 {
			s = s.Offset(opts.offset)
		}
		return s
	}, nil
}

// parseParams splits raw query fragments such as "a=1&b=2" into pairs.
// Percent-escapes are decoded so values are not escaped twice.
func parseParams(args []string) ([]query.Pair, error) {
	var pairs []query.Pair
	for _, arg := range args {
		parsed, err := query.Parse(arg)
		if err != nil {
			return nil, err
		}
		for _, p := range parsed {
			if strings.TrimSpace(p.Key) == "" {
				return nil, fmt.Errorf("%q is not in key=value form", arg)
			}
		}
		pairs = append(pairs, parsed...)
	}
	return pairs, nil
}

// parsePairs splits key=value arguments
func parsePairs(args []string) ([]query.Pair, error) {
	pairs := make([]query.Pair, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%q is not in key=value form", arg)
		}
		pairs = append(pairs, query.Pair{Key: strings.TrimSpace(key), Value: value})
	}
	return pairs, nil
}
