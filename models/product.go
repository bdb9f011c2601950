package models

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Image string `json:"image" yaml:"image"`
}

type Color struct {
	Name      string `json:"name" yaml:"name"`
	Code      string `json:"code" yaml:"code"`
	Available bool   `json:"available" yaml:"available"`
}

type Product struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Category      string   `json:"category" yaml:"category"`
	Price         int      `json:"price" yaml:"price"`
	OriginalPrice int      `json:"original_price" yaml:"original_price"`
	Discount      int      `json:"discount" yaml:"discount"`
	Image         string   `json:"image" yaml:"image"`
	Images        []string `json:"images" yaml:"images"`
	Colors        []Color  `json:"colors" yaml:"colors"`
	Sizes         []string `json:"sizes" yaml:"sizes"`
	Description   string   `json:"description" yaml:"description"`
	Featured      bool     `json:"featured" yaml:"featured"`
	Bestseller    bool     `json:"bestseller" yaml:"bestseller"`
}

// HasSize reports whether size is one of the product's offered sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type ProductFilter struct {
	Category string
	MinPrice *int
	MaxPrice *int
	Size     string
	Search   string
}
