package websearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const watchSuffix = "смотреть онлайн"

// Client looks up watch links through Google Programmable Search.
type Client struct {
	svc      *customsearch.Service
	engineID string
}

// New builds a client. An empty endpoint keeps the public Google endpoint.
func New(ctx context.Context, apiKey, engineID, endpoint string, timeout time.Duration) (*Client, error) {
	opts := []option.ClientOption{
		option.WithHTTPClient(&http.Client{
			Timeout:   timeout,
			Transport: &keyTransport{key: apiKey, base: http.DefaultTransport},
		}),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init customsearch: %w", err)
	}
	return &Client{svc: svc, engineID: engineID}, nil
}

// Query is the search phrase sent for a film.
func Query(name, year string) string {
	return strings.Join(strings.Fields(name+" "+year+" "+watchSuffix), " ")
}

// WatchLinks returns result links in ranking order.
func (c *Client) WatchLinks(ctx context.Context, name, year string) ([]string, error) {
	res, err := c.svc.Cse.List().Cx(c.engineID).Q(Query(name, year)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("customsearch list: %w", err)
	}
	links := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		if it == nil || it.Link == "" {
			continue
		}
		links = append(links, it.Link)
	}
	return links, nil
}

// keyTransport adds the API key to every request; option.WithAPIKey is ignored
// once a custom HTTP client is supplied.
type keyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(r)
}
