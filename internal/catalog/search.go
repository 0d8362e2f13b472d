package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	apperrors "github.com/booktrackapp/booktrack-server/internal/errors"
)

const searchLimit = 5

// Search queries the catalog with a free-text term and materializes the
// first result as a canonical book. Returns an error matching
// apperrors.ErrNoSearchResult when the catalog has nothing for the term.
func (c *Client) Search(ctx context.Context, query string) (*domain.Book, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", searchLimit))

	searchURL := c.baseURL + "?" + params.Encode()

	if c.logger != nil {
		c.logger.Debug("searching catalog", "query", query, "url", searchURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.UnmarshalRead(resp.Body, &volumes); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(volumes.Items) == 0 {
		return nil, apperrors.NoSearchResultf("no catalog result for %q", query)
	}

	book := toBook(&volumes.Items[0])
	return &book, nil
}

// toBook maps a catalog volume onto the canonical book shape.
// The ASIN slot gets the ISBN-13 when present, then ISBN-10, then the
// volume id, so repeated lookups of the same title converge on one key.
func toBook(v *volume) domain.Book {
	info := &v.VolumeInfo

	book := domain.Book{
		Asin:      bestIdentifier(v),
		Title:     info.Title,
		Author:    strings.Join(info.Authors, ", "),
		Thumbnail: info.ImageLinks.Thumbnail,
	}
	if book.Thumbnail == "" {
		book.Thumbnail = info.ImageLinks.SmallThumbnail
	}
	if len(info.Categories) > 0 {
		book.Genre = info.Categories[0]
	}
	if info.PageCount > 0 {
		pages := info.PageCount
		book.PageCount = &pages
	}

	return book
}

func bestIdentifier(v *volume) string {
	var isbn10 string
	for _, id := range v.VolumeInfo.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	if isbn10 != "" {
		return isbn10
	}
	return v.ID
}
