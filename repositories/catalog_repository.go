package repositories

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"golden-elegance/data"
	"golden-elegance/models"

	"gopkg.in/yaml.v3"
)

var defaultColors = []models.Color{
	{Name: "Pink", Code: "#FFB6C1", Available: true},
	{Name: "Blue", Code: "#87CEEB", Available: true},
	{Name: "White", Code: "#FFFFFF", Available: true},
	{Name: "Peach", Code: "#FFDAB9", Available: true},
}

// ImageResolver rewrites a catalog image reference into the URL served to
// clients.
type ImageResolver interface {
	Resolve(ref string) string
}

type catalogFile struct {
	Categories []models.Category `yaml:"categories"`
	Products   []models.Product  `yaml:"products"`
}

// CatalogRepository is the read-only product catalog. It is built once at
// startup and never mutated, so it is safe for concurrent use.
type CatalogRepository struct {
	categories []models.Category
	products   []models.Product
	byID       map[int]int
	bySlug     map[string]int
}

// LoadCatalogRepository reads the catalog from path, or from the embedded
// catalog when path is empty.
func LoadCatalogRepository(path string, resolver ImageResolver) (*CatalogRepository, error) {
	raw := data.Catalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		raw = b
	}
	return NewCatalogRepository(raw, resolver)
}

func NewCatalogRepository(raw []byte, resolver ImageResolver) (*CatalogRepository, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	repo := &CatalogRepository{
		categories: file.Categories,
		products:   file.Products,
		byID:       make(map[int]int, len(file.Products)),
		bySlug:     make(map[string]int, len(file.Categories)),
	}

	var errs []error
	for i, cat := range repo.categories {
		if cat.Slug == "" {
			errs = append(errs, fmt.Errorf("category %d: empty slug", i))
			continue
		}
		if _, dup := repo.bySlug[cat.Slug]; dup {
			errs = append(errs, fmt.Errorf("category %q: duplicate slug", cat.Slug))
			continue
		}
		repo.bySlug[cat.Slug] = i
	}

	for i := range repo.products {
		p := &repo.products[i]
		if err := validateProduct(*p); err != nil {
			errs = append(errs, err)
		}
		if _, dup := repo.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %d: duplicate id", p.ID))
		} else {
			repo.byID[p.ID] = i
		}
		if _, ok := repo.bySlug[p.Category]; !ok {
			errs = append(errs, fmt.Errorf("product %d: unknown category %q", p.ID, p.Category))
		}
		applyDefaults(p)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	if resolver != nil {
		for i := range repo.categories {
			repo.categories[i].Image = resolver.Resolve(repo.categories[i].Image)
		}
		for i := range repo.products {
			p := &repo.products[i]
			p.Image = resolver.Resolve(p.Image)
			for j := range p.Images {
				p.Images[j] = resolver.Resolve(p.Images[j])
			}
		}
	}

	return repo, nil
}

func validateProduct(p models.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product %q: id must be positive", p.Name)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %d: negative price", p.ID)
	}
	if len(p.Sizes) == 0 {
		return fmt.Errorf("product %d: no sizes", p.ID)
	}
	seen := make(map[string]bool, len(p.Sizes))
	for _, s := range p.Sizes {
		if s == "" || seen[s] {
			return fmt.Errorf("product %d: empty or duplicate size %q", p.ID, s)
		}
		seen[s] = true
	}
	if p.Image == "" && len(p.Images) == 0 {
		return fmt.Errorf("product %d: no images", p.ID)
	}
	return nil
}

func applyDefaults(p *models.Product) {
	if len(p.Images) == 0 {
		p.Images = []string{p.Image, p.Image, p.Image}
	}
	if p.Image == "" {
		p.Image = p.Images[0]
	}
	if len(p.Colors) == 0 {
		p.Colors = append([]models.Color(nil), defaultColors...)
	}
}

// Products returns every product in catalog order. Callers get their own
// copies and cannot modify the catalog through them.
func (r *CatalogRepository) Products() []models.Product {
	out := make([]models.Product, len(r.products))
	for i, p := range r.products {
		out[i] = cloneProduct(p)
	}
	return out
}

func cloneProduct(p models.Product) models.Product {
	p.Images = slices.Clone(p.Images)
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	return p
}

func (r *CatalogRepository) ProductByID(id int) (models.Product, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(r.products[i]), true
}

func (r *CatalogRepository) Categories() []models.Category {
	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r *CatalogRepository) CategoryBySlug(slug string) (models.Category, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return models.Category{}, false
	}
	return r.categories[i], true
}
