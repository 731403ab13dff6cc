package mongostore

import (
	"time"

	"github.com/jmanzanog/folio/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// blogPostDocument is the MongoDB shape of a blog post.
type blogPostDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Excerpt  string             `bson:"excerpt"`
	Content  string             `bson:"content"`
	Category string             `bson:"category"`
	Author   string             `bson:"author"`
	Date     time.Time          `bson:"date"`
	Image    string             `bson:"image"`
}

func newBlogPostDocument(p domain.BlogPost) blogPostDocument {
	return blogPostDocument{
		Title:    p.Title,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		Category: p.Category,
		Author:   p.Author,
		Date:     p.Date,
		Image:    p.Image,
	}
}

func (d blogPostDocument) toDomain() domain.BlogPost {
	return domain.BlogPost{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Excerpt:  d.Excerpt,
		Content:  d.Content,
		Category: d.Category,
		Author:   d.Author,
		Date:     d.Date.UTC(),
		Image:    d.Image,
	}
}

type portfolioItemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image"`
	Link        string             `bson:"link"`
	GitHub      string             `bson:"github,omitempty"`
}

func newPortfolioItemDocument(i domain.PortfolioItem) portfolioItemDocument {
	return portfolioItemDocument{
		Title:       i.Title,
		Description: i.Description,
		Category:    i.Category,
		Image:       i.Image,
		Link:        i.Link,
		GitHub:      i.GitHub,
	}
}

func (d portfolioItemDocument) toDomain() domain.PortfolioItem {
	return domain.PortfolioItem{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Image:       d.Image,
		Link:        d.Link,
		GitHub:      d.GitHub,
	}
}

// blogPostSet returns the $set document for the supplied fields of p.
func blogPostSet(p domain.BlogPostPatch) bson.M {
	set := bson.M{}
	putIfPresent(set, "title", p.Title)
	putIfPresent(set, "excerpt", p.Excerpt)
	putIfPresent(set, "content", p.Content)
	putIfPresent(set, "category", p.Category)
	putIfPresent(set, "author", p.Author)
	putIfPresent(set, "date", p.Date)
	putIfPresent(set, "image", p.Image)
	return set
}

func portfolioItemSet(p domain.PortfolioItemPatch) bson.M {
	set := bson.M{}
	putIfPresent(set, "title", p.Title)
	putIfPresent(set, "description", p.Description)
	putIfPresent(set, "category", p.Category)
	putIfPresent(set, "image", p.Image)
	putIfPresent(set, "link", p.Link)
	putIfPresent(set, "github", p.GitHub)
	return set
}

func putIfPresent[T any](set bson.M, field string, value *T) {
	if value != nil {
		set[field] = *value
	}
}
