package domain

// Kind names a content collection. The value doubles as its client cache key.
type Kind string

const (
	KindBlogPosts      Kind = "blogPosts"
	KindPortfolioItems Kind = "portfolioItems"
)

func (k Kind) String() string { return string(k) }
