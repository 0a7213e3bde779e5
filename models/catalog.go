package models

import "gorm.io/gorm"

// CatalogFilters selects products by collection and category slugs.
// Values within one dimension are OR-ed, dimensions are AND-ed, and an empty
// dimension does not filter. Limit 0 means no limit.
type CatalogFilters struct {
	CollectionSlugs []string
	CategorySlugs   []string
	Offset          int
	Limit           int
}

// FacetCount is one selectable bucket of a facet together with the number of
// active products it would hold under the other dimension's current selection.
type FacetCount struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
	Selected     bool   `json:"selected"`
}

// CatalogPage is the result of a faceted catalog query.
type CatalogPage struct {
	Products    []Product
	Total       int64
	Collections []FacetCount
	Categories  []FacetCount
}

// dimension ties a product foreign key to the slugs selected for it.
type dimension struct {
	column string
	model  any
	slugs  []string
}

func collectionDimension(slugs []string) dimension {
	return dimension{column: "products.collection_id", model: &Collection{}, slugs: slugs}
}

func categoryDimension(slugs []string) dimension {
	return dimension{column: "products.category_id", model: &Category{}, slugs: slugs}
}

// activeProducts scopes a query to active products matching every dimension
// that has a selection. A selection of unknown slugs matches nothing.
func activeProducts(tx *gorm.DB, dims ...dimension) *gorm.DB {
	q := tx.Model(&Product{}).Where("products.is_active = ?", true)
	for _, d := range dims {
		if len(d.slugs) == 0 {
			continue
		}
		q = q.Where(d.column+" IN (?)", tx.Model(d.model).Select("id").Where("slug IN ?", d.slugs))
	}
	return q
}

type bucketCount struct {
	BucketID uint
	N        int64
}

// activeCounts counts active products per value of groupColumn, filtered by dims.
func activeCounts(tx *gorm.DB, groupColumn string, dims ...dimension) (map[uint]int64, error) {
	var rows []bucketCount
	err := activeProducts(tx, dims...).
		Select(groupColumn + " AS bucket_id, COUNT(*) AS n").
		Group(groupColumn).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.BucketID] = r.N
	}
	return counts, nil
}

func markSelected(facets []FacetCount, slugs []string) {
	selected := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		selected[s] = true
	}
	for i := range facets {
		facets[i].Selected = selected[facets[i].Slug]
	}
}

// collectionFacets lists every collection with its count under the category
// selection only; the collection selection never narrows its own facet.
func collectionFacets(tx *gorm.DB, f CatalogFilters) ([]FacetCount, error) {
	counts, err := activeCounts(tx, "products.collection_id", categoryDimension(f.CategorySlugs))
	if err != nil {
		return nil, err
	}
	var collections []Collection
	if err := tx.Order("name ASC").Find(&collections).Error; err != nil {
		return nil, err
	}
	facets := make([]FacetCount, len(collections))
	for i, c := range collections {
		facets[i] = FacetCount{ID: c.ID, Slug: c.Slug, Name: c.Name, ProductCount: counts[c.ID]}
	}
	markSelected(facets, f.CollectionSlugs)
	return facets, nil
}

// categoryFacets is the mirror of collectionFacets.
func categoryFacets(tx *gorm.DB, f CatalogFilters) ([]FacetCount, error) {
	counts, err := activeCounts(tx, "products.category_id", collectionDimension(f.CollectionSlugs))
	if err != nil {
		return nil, err
	}
	var categories []Category
	if err := tx.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	facets := make([]FacetCount, len(categories))
	for i, c := range categories {
		facets[i] = FacetCount{ID: c.ID, Slug: c.Slug, Name: c.Name, ProductCount: counts[c.ID]}
	}
	markSelected(facets, f.CategorySlugs)
	return facets, nil
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.id ASC")
}
