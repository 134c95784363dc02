package catalog

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DetailPageURL is the root of the human-facing detail pages, used for QR
// code targets on printed labels.
const DetailPageURL = "https://boardgamegeek.com/boardgame/"

// Record is one catalog item as retrieved from the remote API. The fields
// filled by the collection query are always present; Weight, Cooperative,
// Description and RecommendedPlayers only materialize after EnsureDetails.
type Record struct {
	ID                 int
	Name               string
	YearPublished      int
	Image              string
	Thumbnail          string
	MinPlayers         int
	MaxPlayers         int
	RecommendedPlayers int
	MinPlayTime        int
	MaxPlayTime        int
	PlayTime           int
	GeekRating         float64
	AverageRating      float64
	NumVoters          int
	Rank               int
	Weight             float64
	Cooperative        bool
	Description        string
	Hash               string

	detailed bool
}

// Details is the field set that only the per-thing detail document carries.
type Details struct {
	RecommendedPlayers int
	Weight             float64
	Cooperative        bool
	Description        string
}

// DetailFetcher retrieves the detail document for a single catalog item.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, id int) (*Details, error)
}

// URL returns the catalog detail page for this record.
func (r *Record) URL() string {
	return fmt.Sprintf("%s%d", DetailPageURL, r.ID)
}

// Detailed reports whether the detail-only fields have been merged.
func (r *Record) Detailed() bool {
	return r.detailed
}

// EnsureDetails merges the detail-only fields on first call and recomputes
// the content hash. Subsequent calls are no-ops.
func (r *Record) EnsureDetails(ctx context.Context, f DetailFetcher) error {
	if r.detailed {
		return nil
	}
	d, err := f.FetchDetails(ctx, r.ID)
	if err != nil {
		return err
	}
	r.RecommendedPlayers = d.RecommendedPlayers
	r.Weight = d.Weight
	r.Cooperative = d.Cooperative
	r.Description = d.Description
	r.detailed = true
	r.ComputeHash()
	return nil
}

// ComputeHash derives the content hash over the key-sorted field set.
// Two records that agree on every field produce the same hash, so the
// store can detect no-op updates without comparing columns.
func (r *Record) ComputeHash() {
	fields := map[string]any{
		"averageRating":      r.AverageRating,
		"cooperative":        r.Cooperative,
		"description":        r.Description,
		"geekRating":         r.GeekRating,
		"id":                 r.ID,
		"image":              r.Image,
		"maxPlayTime":        r.MaxPlayTime,
		"maxPlayers":         r.MaxPlayers,
		"minPlayTime":        r.MinPlayTime,
		"minPlayers":         r.MinPlayers,
		"name":               r.Name,
		"numVoters":          r.NumVoters,
		"playTime":           r.PlayTime,
		"rank":               r.Rank,
		"recommendedPlayers": r.RecommendedPlayers,
		"thumbnail":          r.Thumbnail,
		"weight":             r.Weight,
		"yearPublished":      r.YearPublished,
	}
	// json.Marshal emits map keys in sorted order, which gives us the
	// canonical serialized form for free.
	buf, _ := json.Marshal(fields)
	r.Hash = fmt.Sprintf("%x", md5.Sum(buf))
}

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	boardGameSuffix = regexp.MustCompile(`(?i)\s*:?\s*(the\s+)?board\s*game$`)
	theArticle      = regexp.MustCompile(`(?i)^the\s+`)
)

// NormalizeName cleans a raw catalog name for display and sorting:
// whitespace runs collapse to single spaces, the name is trimmed, a
// trailing ": The Board Game" style suffix is stripped, and a leading
// "The " is dropped. The steps run in that order.
func NormalizeName(raw string) string {
	s := strings.TrimSpace(whitespaceRuns.ReplaceAllString(raw, " "))
	s = strings.TrimSpace(boardGameSuffix.ReplaceAllString(s, ""))
	return theArticle.ReplaceAllString(s, "")
}
