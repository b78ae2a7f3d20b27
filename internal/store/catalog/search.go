// internal/store/catalog/search.go
package catalog

import (
	"strings"

	"uniautomarket/internal/models"
)

// BusinessMatch joins a search hit with its owning category for display.
type BusinessMatch struct {
	Business models.Business
	Category models.Category
}

type ProductMatch struct {
	Product  models.Product
	Business models.Business
	Category models.Category
}

// BusinessByID scans the whole tree; business ids are unique per
// category, and in practice globally, since the UI generates them.
func (s *Store) BusinessByID(id string) (models.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.tree {
		for _, b := range c.Businesses {
			if b.ID == id {
				return b.Clone(), true
			}
		}
	}
	return models.Business{}, false
}

func (s *Store) CategoryByID(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.tree {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Category{}, false
}

// CategoryOfBusiness resolves the owning category of a business.
func (s *Store) CategoryOfBusiness(businessID string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.tree {
		for _, b := range c.Businesses {
			if b.ID == businessID {
				return c.Clone(), true
			}
		}
	}
	return models.Category{}, false
}

func (s *Store) ProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.tree {
		for _, b := range c.Businesses {
			for _, p := range b.Products {
				if p.ID == id {
					return p, true
				}
			}
		}
	}
	return models.Product{}, false
}

func (s *Store) ServiceByID(id string) (models.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.tree {
		for _, b := range c.Businesses {
			for _, sv := range b.Services {
				if sv.ID == id {
					return sv, true
				}
			}
		}
	}
	return models.Service{}, false
}

// SearchBusinesses returns every business whose name, description or
// address contains the query case-insensitively. An empty or blank query
// returns no results.
func (s *Store) SearchBusinesses(query string) []BusinessMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []BusinessMatch
	for _, c := range s.tree {
		for _, b := range c.Businesses {
			if containsFold(b.Name, q) || containsFold(b.Description, q) || containsFold(b.Address, q) {
				results = append(results, BusinessMatch{Business: b.Clone(), Category: c.Clone()})
			}
		}
	}
	return results
}

// SearchProducts matches over product name and description, joined with
// the owning business and category.
func (s *Store) SearchProducts(query string) []ProductMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []ProductMatch
	for _, c := range s.tree {
		for _, b := range c.Businesses {
			for _, p := range b.Products {
				if containsFold(p.Name, q) || containsFold(p.Description, q) {
					results = append(results, ProductMatch{Product: p, Business: b.Clone(), Category: c.Clone()})
				}
			}
		}
	}
	return results
}

// containsFold expects needle to be lowercased already.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
