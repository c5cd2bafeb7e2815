package species

import (
	"strings"

	"github.com/shoalhq/shoal/internal/model"
)

// pageSize is the number of items returned per search page.
const pageSize = 20

// Item is one picker entry: an ID plus the display text.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Page is one page of picker results. More reports whether further pages
// exist past this one.
type Page struct {
	Items []Item `json:"items"`
	More  bool   `json:"more"`
}

// Lookup returns the single-item page for a known ID, used by the picker to
// prepopulate a saved selection. Unknown IDs yield an empty page.
func (c *Catalog) Lookup(id string) Page {
	sp, ok := c.ByID(id)
	if !ok {
		return Page{Items: []Item{}}
	}
	return Page{Items: []Item{{ID: sp.ID, Text: sp.Name}}}
}

// Search returns one page of species whose name contains q,
// case-insensitively. An empty q matches everything. Pages are 1-based;
// page values below 1 are treated as 1.
func (c *Catalog) Search(q string, page int) Page {
	if page < 1 {
		page = 1
	}
	q = strings.ToLower(strings.TrimSpace(q))

	var matches []model.Species
	if q == "" {
		matches = c.list
	} else {
		for _, sp := range c.list {
			if strings.Contains(strings.ToLower(sp.Name), q) {
				matches = append(matches, sp)
			}
		}
	}

	total := len(matches)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]Item, 0, end-start)
	for _, sp := range matches[start:end] {
		items = append(items, Item{ID: sp.ID, Text: sp.Name})
	}

	return Page{Items: items, More: end < total}
}
