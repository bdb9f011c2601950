package services

import (
	"net/url"
	"strings"

	"golden-elegance/models"
	"golden-elegance/repositories"

	"golang.org/x/text/cases"
)

const (
	DefaultRelatedLimit  = 4
	SearchMinQueryLength = 2
	SearchPreviewLimit   = 5
)

type CatalogService struct {
	catalogRepo *repositories.CatalogRepository
}

func NewCatalogService(catalogRepo *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

func (s *CatalogService) GetCategories() []models.Category {
	return s.catalogRepo.Categories()
}

func (s *CatalogService) GetCategoryBySlug(slug string) (models.Category, bool) {
	return s.catalogRepo.CategoryBySlug(slug)
}

func (s *CatalogService) GetProductByID(id int) (models.Product, bool) {
	return s.catalogRepo.ProductByID(id)
}

// GetProductsByCategory returns the whole catalog for an empty slug.
func (s *CatalogService) GetProductsByCategory(slug string) []models.Product {
	if slug == "" {
		return s.catalogRepo.Products()
	}
	return s.where(func(p models.Product) bool { return p.Category == slug })
}

func (s *CatalogService) GetFeaturedProducts() []models.Product {
	return s.where(func(p models.Product) bool { return p.Featured })
}

func (s *CatalogService) GetBestsellerProducts() []models.Product {
	return s.where(func(p models.Product) bool { return p.Bestseller })
}

// GetRelatedProducts lists other products of the same category in catalog
// order. A non-positive limit falls back to DefaultRelatedLimit.
func (s *CatalogService) GetRelatedProducts(productID int, categorySlug string, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	related := s.where(func(p models.Product) bool {
		return p.Category == categorySlug && p.ID != productID
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

func (s *CatalogService) FilterProducts(filter models.ProductFilter) []models.Product {
	var matched map[int]bool
	if strings.TrimSpace(filter.Search) != "" {
		matched = map[int]bool{}
		for _, p := range s.Search(filter.Search) {
			matched[p.ID] = true
		}
	}
	return s.where(func(p models.Product) bool {
		if matched != nil && !matched[p.ID] {
			return false
		}
		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			return false
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			return false
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			return false
		}
		if filter.Size != "" && !p.HasSize(filter.Size) {
			return false
		}
		return true
	})
}

// Search matches query against name, category slug and description,
// ignoring case. An empty query matches nothing.
func (s *CatalogService) Search(query string) []models.Product {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))
	if needle == "" {
		return []models.Product{}
	}
	return s.where(func(p models.Product) bool {
		return strings.Contains(folder.String(p.Name), needle) ||
			strings.Contains(folder.String(p.Category), needle) ||
			strings.Contains(folder.String(p.Description), needle)
	})
}

// SearchPreview is the navbar dropdown: a hint below the minimum length,
// otherwise the first few matches and a link to the full listing.
func (s *CatalogService) SearchPreview(query string) models.SearchResult {
	query = strings.TrimSpace(query)
	result := models.SearchResult{Query: query, Items: []models.Product{}}

	if query == "" {
		return result
	}
	if len([]rune(query)) < SearchMinQueryLength {
		result.Hint = "Type at least 2 characters..."
		return result
	}

	matches := s.Search(query)
	result.Total = len(matches)
	if result.Total == 0 {
		result.Hint = `No products found matching "` + query + `"`
		return result
	}
	if result.Total > SearchPreviewLimit {
		result.Items = matches[:SearchPreviewLimit]
		result.ViewAllURL = "/products?search=" + url.QueryEscape(query)
	} else {
		result.Items = matches
	}
	return result
}

func (s *CatalogService) where(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range s.catalogRepo.Products() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
