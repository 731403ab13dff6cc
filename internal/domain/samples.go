package domain

import "time"

var sampleDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SampleBlogPosts is the bundled fallback shown when neither the API nor the cache has data.
func SampleBlogPosts() []BlogPost {
	return []BlogPost{
		{
			ID:       "1",
			Title:    "Getting Started with Web Development",
			Excerpt:  "Learn the basics of web development and start your journey.",
			Content:  "Web development is an exciting field...",
			Category: "Web Development",
			Author:   "John Doe",
			Date:     sampleDate,
			Image:    "https://images.unsplash.com/photo-1461749280684-dccba630e2f6",
		},
	}
}

func SamplePortfolioItems() []PortfolioItem {
	return []PortfolioItem{
		{
			ID:          "1",
			Title:       "E-commerce Platform",
			Description: "A full-featured e-commerce solution",
			Category:    "Web Development",
			Image:       "https://images.unsplash.com/photo-1557821552-17105176677c",
			Link:        "https://example.com",
			GitHub:      "https://github.com/example/project",
		},
	}
}
