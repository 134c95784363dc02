package catalog

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoOwnedGames indicates the user's raw collection is empty. A filter
// pattern narrowing the result to zero games does not raise this.
var ErrNoOwnedGames = errors.New("user owns no games")

// RetryPolicy controls the reaction to HTTP 429 responses.
type RetryPolicy struct {
	// Interval is the fixed sleep between attempts. The API gives no
	// Retry-After hint, so there is no backoff growth.
	Interval time.Duration
	// MaxAttempts caps the total attempts. 0 retries forever.
	MaxAttempts int
}

// Client talks to the BGG XML API.
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
	logger  *zap.Logger

	// sleep is swapped out in tests to observe retry delays.
	sleep func(time.Duration)
}

// NewClient builds a Client from config. The logger may not be nil.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	interval := time.Duration(cfg.RateLimitSleepSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		retry:   RetryPolicy{Interval: interval, MaxAttempts: cfg.MaxRetries},
		logger:  logger,
		sleep:   time.Sleep,
	}
}

// HTTPClient exposes the underlying HTTP client so collaborators that
// download from the same host (e.g. the artwork mirror) can share it.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// envelopeProbe distinguishes data documents from the two failure roots the
// API can answer with: <errors> for application errors and <message> for
// informational responses (e.g. "your request has been queued").
type envelopeProbe struct {
	XMLName  xml.Name
	Text     string   `xml:",chardata"`
	Messages []string `xml:"error>message"`
}

// get issues one API query, retrying on rate limiting, and returns the raw
// body of a validated data document.
func (c *Client) get(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	target := c.baseURL + resource + "?" + query.Encode()
	var body []byte
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("bgg: build request: %w", err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("bgg: request %s: %w", resource, err)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if c.retry.MaxAttempts > 0 && attempt >= c.retry.MaxAttempts {
				return nil, fmt.Errorf("bgg: rate limited after %d attempts", attempt)
			}
			c.logger.Warn("rate limited, sleeping",
				zap.String("resource", resource),
				zap.Duration("sleep", c.retry.Interval))
			c.sleep(c.retry.Interval)
			continue
		}
		body, err = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("bgg: read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("bgg: %s returned HTTP %d", resource, resp.StatusCode)
		}
		break
	}

	var probe envelopeProbe
	if err := xml.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("bgg: response was not valid XML: %w", err)
	}
	switch probe.XMLName.Local {
	case "errors":
		msg := "unknown"
		if len(probe.Messages) > 0 {
			msg = probe.Messages[0]
		}
		return nil, fmt.Errorf("bgg: API returned error: %s", msg)
	case "message":
		return nil, fmt.Errorf("bgg: API returned message: %s", strings.TrimSpace(probe.Text))
	}
	return body, nil
}

// Collection query payload.

type collectionDoc struct {
	Items []collectionItem `xml:"item"`
}

type collectionItem struct {
	ObjectID  string `xml:"objectid,attr"`
	Subtype   string `xml:"subtype,attr"`
	Name      string `xml:"name"`
	Year      string `xml:"yearpublished"`
	Image     string `xml:"image"`
	Thumbnail string `xml:"thumbnail"`
	Stats     struct {
		MinPlayers  string `xml:"minplayers,attr"`
		MaxPlayers  string `xml:"maxplayers,attr"`
		MinPlayTime string `xml:"minplaytime,attr"`
		MaxPlayTime string `xml:"maxplaytime,attr"`
		PlayingTime string `xml:"playingtime,attr"`
		Rating      struct {
			UsersRated attrValue `xml:"usersrated"`
			Average    attrValue `xml:"average"`
			BayesAvg   attrValue `xml:"bayesaverage"`
			Ranks      []rankRef `xml:"ranks>rank"`
		} `xml:"rating"`
	} `xml:"stats"`
}

type attrValue struct {
	Value string `xml:"value,attr"`
}

type rankRef struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// FetchCollection returns the user's owned collection as partial records,
// optionally narrowed by pattern (see Matcher for the pattern contract).
// Only items of the primary boardgame subtype are returned; expansions and
// accessories carried in the same document are skipped. An empty raw
// collection yields ErrNoOwnedGames.
func (c *Client) FetchCollection(ctx context.Context, username, pattern string) ([]*Record, error) {
	query := url.Values{
		"username": {username},
		"version":  {"1"},
		"stats":    {"1"},
		"own":      {"1"},
	}
	body, err := c.get(ctx, "collection", query)
	if err != nil {
		return nil, err
	}
	var doc collectionDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("bgg: decode collection: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, ErrNoOwnedGames
	}

	matcher := NewMatcher(pattern)
	records := make([]*Record, 0, len(doc.Items))
	for _, item := range doc.Items {
		if item.Subtype != "boardgame" {
			continue
		}
		rec := recordFromItem(item)
		if !matcher.Match(rec.Name) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// recordFromItem assembles a partial Record, substituting 0 or "" for any
// attribute the document omits.
func recordFromItem(item collectionItem) *Record {
	rec := &Record{
		ID:            atoi(item.ObjectID),
		Name:          NormalizeName(item.Name),
		YearPublished: atoi(item.Year),
		Image:         item.Image,
		Thumbnail:     item.Thumbnail,
		MinPlayers:    atoi(item.Stats.MinPlayers),
		MaxPlayers:    atoi(item.Stats.MaxPlayers),
		MinPlayTime:   atoi(item.Stats.MinPlayTime),
		MaxPlayTime:   atoi(item.Stats.MaxPlayTime),
		PlayTime:      atoi(item.Stats.PlayingTime),
		GeekRating:    atof(item.Stats.Rating.BayesAvg.Value),
		AverageRating: atof(item.Stats.Rating.Average.Value),
		NumVoters:     atoi(item.Stats.Rating.UsersRated.Value),
	}
	for _, rank := range item.Stats.Rating.Ranks {
		if rank.Name == "boardgame" {
			// "Not Ranked" parses to 0, which marks expansions.
			rec.Rank = atoi(rank.Value)
			break
		}
	}
	return rec
}

// Thing query payload.

type thingDoc struct {
	Items []thingItem `xml:"item"`
}

type thingItem struct {
	Description string      `xml:"description"`
	Polls       []thingPoll `xml:"poll"`
	Links       []thingLink `xml:"link"`
	Statistics  struct {
		Ratings struct {
			AverageWeight attrValue `xml:"averageweight"`
		} `xml:"ratings"`
	} `xml:"statistics"`
}

type thingPoll struct {
	Name    string `xml:"name,attr"`
	Results []struct {
		NumPlayers string `xml:"numplayers,attr"`
		Options    []struct {
			Value    string `xml:"value,attr"`
			NumVotes string `xml:"numvotes,attr"`
		} `xml:"result"`
	} `xml:"results"`
}

type thingLink struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// cooperativeMechanics are the mechanic tags that mark a co-op game. The
// catalog has renamed the tag over the years, so both spellings count.
var cooperativeMechanics = map[string]bool{
	"Cooperative Game":  true,
	"Co-operative Play": true,
}

// FetchDetails returns the detail-only field set for one item.
//
// The recommended player count comes from the "suggested_numplayers" poll:
// for each reported player count we take the vote tally of the "Best"
// option and pick the count with the highest tally. Ties resolve to the
// count seen first in document order, which is implementation-defined
// rather than a guarantee of the source.
func (c *Client) FetchDetails(ctx context.Context, id int) (*Details, error) {
	query := url.Values{
		"id":      {strconv.Itoa(id)},
		"version": {"1"},
		"stats":   {"1"},
	}
	body, err := c.get(ctx, "thing", query)
	if err != nil {
		return nil, err
	}
	var doc thingDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("bgg: decode thing %d: %w", id, err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("bgg: thing %d not found", id)
	}
	item := doc.Items[0]

	details := &Details{
		Weight:      atof(item.Statistics.Ratings.AverageWeight.Value),
		Description: item.Description,
	}
	bestVotes := -1
	for _, poll := range item.Polls {
		if poll.Name != "suggested_numplayers" {
			continue
		}
		for _, results := range poll.Results {
			for _, option := range results.Options {
				if option.Value != "Best" {
					continue
				}
				if votes := atoi(option.NumVotes); votes > bestVotes {
					bestVotes = votes
					details.RecommendedPlayers = atoi(strings.TrimSuffix(results.NumPlayers, "+"))
				}
				break
			}
		}
	}
	for _, link := range item.Links {
		if link.Type == "boardgamemechanic" && cooperativeMechanics[link.Value] {
			details.Cooperative = true
			break
		}
	}
	return details, nil
}

// atoi parses an int, substituting 0 for anything unparseable, including
// the empty string and "Not Ranked".
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
