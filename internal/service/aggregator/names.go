package aggregator

import "github.com/mamadbah2/tilestock/internal/domain/models"

// NameIndex maps entity ids to display names. The first entity with a given
// id wins.
type NameIndex map[int64]string

// Lookup returns the name for id, or nil when id is unknown.
func (n NameIndex) Lookup(id int64) *string {
	name, ok := n[id]
	if !ok {
		return nil
	}
	return &name
}

// ProductNames indexes product names by id.
func ProductNames(products []models.Product) NameIndex {
	idx := make(NameIndex, len(products))
	for _, p := range products {
		if _, ok := idx[p.ID]; !ok {
			idx[p.ID] = p.Name
		}
	}
	return idx
}

// LocationNames indexes location names by id.
func LocationNames(locations []models.Location) NameIndex {
	idx := make(NameIndex, len(locations))
	for _, l := range locations {
		if _, ok := idx[l.ID]; !ok {
			idx[l.ID] = l.Name
		}
	}
	return idx
}

// BrandNames indexes brand names by id.
func BrandNames(brands []models.Brand) NameIndex {
	idx := make(NameIndex, len(brands))
	for _, b := range brands {
		if _, ok := idx[b.ID]; !ok {
			idx[b.ID] = b.Name
		}
	}
	return idx
}

// CategoryNames indexes category names by id.
func CategoryNames(categories []models.Category) NameIndex {
	idx := make(NameIndex, len(categories))
	for _, c := range categories {
		if _, ok := idx[c.ID]; !ok {
			idx[c.ID] = c.Name
		}
	}
	return idx
}
