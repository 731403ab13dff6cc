package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	blogPostsCollection      = "blogposts"
	portfolioItemsCollection = "portfolioitems"
)

// Connect opens a client for uri and verifies the primary answers.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	journal := true
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetWriteConcern(&writeconcern.WriteConcern{W: 1, Journal: &journal})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// Repository stores blog posts and portfolio items as MongoDB documents.
type Repository struct {
	posts *mongo.Collection
	items *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		posts: db.Collection(blogPostsCollection),
		items: db.Collection(portfolioItemsCollection),
	}
}

// objectID parses id. Anything that is not an ObjectID cannot name a stored
// document, so it reports not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, domain.ErrNotFound)
	}
	return oid, nil
}

func notFound(err error, what, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", what, id, err)
}

func (r *Repository) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	cursor, err := r.posts.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("querying blog posts: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.WarnContext(ctx, "Failed to close cursor", "error", err)
		}
	}()

	var docs []blogPostDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding blog posts: %w", err)
	}

	posts := make([]domain.BlogPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *Repository) FindBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc blogPostDocument
	if err := r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "blog post", id)
	}
	post := doc.toDomain()
	return &post, nil
}

func (r *Repository) InsertBlogPost(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error) {
	doc := newBlogPostDocument(post)
	doc.ID = primitive.NewObjectID()

	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		slog.ErrorContext(ctx, "Failed to insert blog post", "error", err)
		return nil, fmt.Errorf("inserting blog post: %w", err)
	}
	stored := doc.toDomain()
	return &stored, nil
}

func (r *Repository) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	if patch.IsEmpty() {
		return r.FindBlogPost(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc blogPostDocument
	err = r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": blogPostSet(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "blog post", id)
	}
	post := doc.toDomain()
	return &post, nil
}

func (r *Repository) DeleteBlogPost(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if err := r.posts.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err(); err != nil {
		return notFound(err, "blog post", id)
	}
	return nil
}

func (r *Repository) ListPortfolioItems(ctx context.Context) ([]domain.PortfolioItem, error) {
	cursor, err := r.items.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("querying portfolio items: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.WarnContext(ctx, "Failed to close cursor", "error", err)
		}
	}()

	var docs []portfolioItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding portfolio items: %w", err)
	}

	items := make([]domain.PortfolioItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (r *Repository) FindPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc portfolioItemDocument
	if err := r.items.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "portfolio item", id)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *Repository) InsertPortfolioItem(ctx context.Context, item domain.PortfolioItem) (*domain.PortfolioItem, error) {
	doc := newPortfolioItemDocument(item)
	doc.ID = primitive.NewObjectID()

	if _, err := r.items.InsertOne(ctx, doc); err != nil {
		slog.ErrorContext(ctx, "Failed to insert portfolio item", "error", err)
		return nil, fmt.Errorf("inserting portfolio item: %w", err)
	}
	stored := doc.toDomain()
	return &stored, nil
}

func (r *Repository) UpdatePortfolioItem(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error) {
	if patch.IsEmpty() {
		return r.FindPortfolioItem(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc portfolioItemDocument
	err = r.items.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": portfolioItemSet(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "portfolio item", id)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *Repository) DeletePortfolioItem(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if err := r.items.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err(); err != nil {
		return notFound(err, "portfolio item", id)
	}
	return nil
}
