package domain

import (
	"fmt"
	"strings"
	"time"
)

type BlogPost struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	Image    string    `json:"image"`
}

// BlogPostDraft is a blog post that has not been stored yet, so it carries no ID.
type BlogPostDraft struct {
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	Image    string    `json:"image"`
}

// Validate reports every missing required field at once.
func (d BlogPostDraft) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", d.Title},
		{"excerpt", d.Excerpt},
		{"content", d.Content},
		{"category", d.Category},
		{"author", d.Author},
		{"image", d.Image},
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

func NewBlogPost(id string, d BlogPostDraft) BlogPost {
	date := d.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return BlogPost{
		ID:       id,
		Title:    d.Title,
		Excerpt:  d.Excerpt,
		Content:  d.Content,
		Category: d.Category,
		Author:   d.Author,
		Date:     date,
		Image:    d.Image,
	}
}

// BlogPostPatch is a partial update. Nil fields are left untouched.
type BlogPostPatch struct {
	Title    *string    `json:"title,omitempty"`
	Excerpt  *string    `json:"excerpt,omitempty"`
	Content  *string    `json:"content,omitempty"`
	Category *string    `json:"category,omitempty"`
	Author   *string    `json:"author,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Image    *string    `json:"image,omitempty"`
}

func (p BlogPostPatch) Apply(post *BlogPost) {
	setIfPresent(&post.Title, p.Title)
	setIfPresent(&post.Excerpt, p.Excerpt)
	setIfPresent(&post.Content, p.Content)
	setIfPresent(&post.Category, p.Category)
	setIfPresent(&post.Author, p.Author)
	setIfPresent(&post.Date, p.Date)
	setIfPresent(&post.Image, p.Image)
}

func (p BlogPostPatch) IsEmpty() bool {
	return p == BlogPostPatch{}
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
