// Package news fetches recent headlines for screened symbols from the
// Google News RSS feed. Enrichment only: failures degrade to no news.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockScout/internal/model"
)

// maxItems caps the headlines attached to one symbol.
const maxItems = 3

// Client fetches stock news from Google News RSS.
type Client struct {
	HTTP     *http.Client
	BaseURL  string
	location *time.Location
}

// NewClient creates a news client with optional proxy support.
func NewClient(proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		BaseURL:  "https://news.google.com",
		location: loc,
	}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Source  struct {
		Name string `xml:",chardata"`
	} `xml:"source"`
}

// FetchStockNews returns up to three recent headlines for a symbol.
func (c *Client) FetchStockNews(ctx context.Context, symbol string) ([]model.StockNews, error) {
	// Strip the exchange suffix for a cleaner search query.
	clean := strings.TrimSuffix(symbol, ".NS")
	query := url.QueryEscape(fmt.Sprintf("%s stock news India", clean))
	u := fmt.Sprintf("%s/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en", c.BaseURL, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news: status %d for %s", resp.StatusCode, symbol)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	items := make([]model.StockNews, 0, maxItems)
	for _, it := range feed.Channel.Items {
		if len(items) == maxItems {
			break
		}
		if it.Title == "" || it.Link == "" {
			continue
		}
		publisher := it.Source.Name
		if publisher == "" {
			publisher = "Google News"
		}
		items = append(items, model.StockNews{
			Title:     it.Title,
			Link:      it.Link,
			Publisher: publisher,
			Time:      c.formatPubDate(it.PubDate),
		})
	}
	return items, nil
}

func (c *Client) formatPubDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC1123, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC1123Z, raw); err != nil {
			return raw
		}
	}
	return t.In(c.location).Format("2006-01-02 15:04")
}
