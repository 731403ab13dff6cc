package domain

import (
	"fmt"
	"strings"
)

type PortfolioItem struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	GitHub      string `json:"github,omitempty"`
}

type PortfolioItemDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	GitHub      string `json:"github,omitempty"`
}

func (d PortfolioItemDraft) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", d.Title},
		{"description", d.Description},
		{"category", d.Category},
		{"image", d.Image},
		{"link", d.Link},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func NewPortfolioItem(id string, d PortfolioItemDraft) PortfolioItem {
	return PortfolioItem{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Image:       d.Image,
		Link:        d.Link,
		GitHub:      d.GitHub,
	}
}

type PortfolioItemPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Image       *string `json:"image,omitempty"`
	Link        *string `json:"link,omitempty"`
	GitHub      *string `json:"github,omitempty"`
}

func (p PortfolioItemPatch) Apply(item *PortfolioItem) {
	setIfPresent(&item.Title, p.Title)
	setIfPresent(&item.Description, p.Description)
	setIfPresent(&item.Category, p.Category)
	setIfPresent(&item.Image, p.Image)
	setIfPresent(&item.Link, p.Link)
	setIfPresent(&item.GitHub, p.GitHub)
}

func (p PortfolioItemPatch) IsEmpty() bool {
	return p == PortfolioItemPatch{}
}
