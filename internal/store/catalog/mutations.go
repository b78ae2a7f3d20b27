// internal/store/catalog/mutations.go
package catalog

import (
	"fmt"
	"strings"

	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

// ==========================
// Categories
// ==========================

func (s *Store) AddCategory(c models.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	return s.mutate("add_category", func(tree models.Tree) (models.Tree, error) {
		if _, ok := findCategory(tree, c.ID); ok {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("duplicate category id %q", c.ID))
		}
		next := append(tree.Clone(), c.Clone())
		return next, nil
	})
}

func (s *Store) UpdateCategory(c models.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	return s.mutate("update_category", func(tree models.Tree) (models.Tree, error) {
		i, ok := findCategory(tree, c.ID)
		if !ok {
			return nil, apperrors.NewNotFoundError("category", c.ID)
		}
		next := shallowCopy(tree)
		updated := c.Clone()
		// Children travel with the category; an update payload never
		// replaces the business list.
		updated.Businesses = tree[i].Businesses
		next[i] = updated
		return next, nil
	})
}

// DeleteCategory cascades: every business under the category, with its
// products and services, leaves the tree with it.
func (s *Store) DeleteCategory(id string) error {
	return s.mutate("delete_category", func(tree models.Tree) (models.Tree, error) {
		i, ok := findCategory(tree, id)
		if !ok {
			return nil, apperrors.NewNotFoundError("category", id)
		}
		next := make(models.Tree, 0, len(tree)-1)
		next = append(next, tree[:i]...)
		next = append(next, tree[i+1:]...)
		return next, nil
	})
}

// ==========================
// Businesses
// ==========================

func (s *Store) AddBusiness(categoryID string, b models.Business) error {
	if err := validateBusiness(b); err != nil {
		return err
	}
	return s.mutate("add_business", func(tree models.Tree) (models.Tree, error) {
		i, ok := findCategory(tree, categoryID)
		if !ok {
			return nil, apperrors.NewNotFoundError("category", categoryID)
		}
		if _, ok := findBusiness(tree[i], b.ID); ok {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("duplicate business id %q", b.ID))
		}
		added := b.Clone()
		added.CategoryID = categoryID
		next := shallowCopy(tree)
		cat := tree[i]
		cat.Businesses = append(append([]models.Business(nil), tree[i].Businesses...), added)
		next[i] = cat
		return next, nil
	})
}

func (s *Store) UpdateBusiness(categoryID string, b models.Business) error {
	if err := validateBusiness(b); err != nil {
		return err
	}
	return s.mutate("update_business", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, b.ID, func(prev models.Business) (models.Business, error) {
			updated := b.Clone()
			updated.CategoryID = categoryID
			updated.Products = prev.Products
			updated.Services = prev.Services
			updated.Visits = prev.Visits
			return updated, nil
		})
	})
}

func (s *Store) DeleteBusiness(categoryID, businessID string) error {
	return s.mutate("delete_business", func(tree models.Tree) (models.Tree, error) {
		i, ok := findCategory(tree, categoryID)
		if !ok {
			return nil, apperrors.NewNotFoundError("category", categoryID)
		}
		j, ok := findBusiness(tree[i], businessID)
		if !ok {
			return nil, apperrors.NewNotFoundError("business", businessID)
		}
		next := shallowCopy(tree)
		cat := tree[i]
		cat.Businesses = make([]models.Business, 0, len(tree[i].Businesses)-1)
		cat.Businesses = append(cat.Businesses, tree[i].Businesses[:j]...)
		cat.Businesses = append(cat.Businesses, tree[i].Businesses[j+1:]...)
		next[i] = cat
		return next, nil
	})
}

// IncrementVisits bumps the business visit counter. Like every other
// mutation it re-persists the whole tree.
func (s *Store) IncrementVisits(categoryID, businessID string) error {
	return s.mutate("increment_visits", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			b.Visits++
			return b, nil
		})
	})
}

// ==========================
// Products
// ==========================

func (s *Store) AddProduct(categoryID, businessID string, p models.Product) error {
	if err := validateItem(p.ID, p.Name); err != nil {
		return err
	}
	return s.mutate("add_product", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			if _, ok := findProduct(b, p.ID); ok {
				return b, apperrors.NewInvalidInputError(fmt.Sprintf("duplicate product id %q", p.ID))
			}
			b.Products = append(append([]models.Product(nil), b.Products...), p)
			return b, nil
		})
	})
}

func (s *Store) UpdateProduct(categoryID, businessID string, p models.Product) error {
	if err := validateItem(p.ID, p.Name); err != nil {
		return err
	}
	return s.mutate("update_product", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			j, ok := findProduct(b, p.ID)
			if !ok {
				return b, apperrors.NewNotFoundError("product", p.ID)
			}
			b.Products = append([]models.Product(nil), b.Products...)
			b.Products[j] = p
			return b, nil
		})
	})
}

func (s *Store) DeleteProduct(categoryID, businessID, productID string) error {
	return s.mutate("delete_product", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			j, ok := findProduct(b, productID)
			if !ok {
				return b, apperrors.NewNotFoundError("product", productID)
			}
			products := make([]models.Product, 0, len(b.Products)-1)
			products = append(products, b.Products[:j]...)
			products = append(products, b.Products[j+1:]...)
			b.Products = products
			return b, nil
		})
	})
}

// ==========================
// Services
// ==========================

func (s *Store) AddService(categoryID, businessID string, sv models.Service) error {
	if err := validateItem(sv.ID, sv.Name); err != nil {
		return err
	}
	return s.mutate("add_service", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			if _, ok := findService(b, sv.ID); ok {
				return b, apperrors.NewInvalidInputError(fmt.Sprintf("duplicate service id %q", sv.ID))
			}
			b.Services = append(append([]models.Service(nil), b.Services...), sv)
			return b, nil
		})
	})
}

func (s *Store) UpdateService(categoryID, businessID string, sv models.Service) error {
	if err := validateItem(sv.ID, sv.Name); err != nil {
		return err
	}
	return s.mutate("update_service", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			j, ok := findService(b, sv.ID)
			if !ok {
				return b, apperrors.NewNotFoundError("service", sv.ID)
			}
			b.Services = append([]models.Service(nil), b.Services...)
			b.Services[j] = sv
			return b, nil
		})
	})
}

func (s *Store) DeleteService(categoryID, businessID, serviceID string) error {
	return s.mutate("delete_service", func(tree models.Tree) (models.Tree, error) {
		return withBusiness(tree, categoryID, businessID, func(b models.Business) (models.Business, error) {
			j, ok := findService(b, serviceID)
			if !ok {
				return b, apperrors.NewNotFoundError("service", serviceID)
			}
			services := make([]models.Service, 0, len(b.Services)-1)
			services = append(services, b.Services[:j]...)
			services = append(services, b.Services[j+1:]...)
			b.Services = services
			return b, nil
		})
	})
}

// ==========================
// Path helpers
// ==========================

func shallowCopy(tree models.Tree) models.Tree {
	return append(models.Tree(nil), tree...)
}

func findCategory(tree models.Tree, id string) (int, bool) {
	for i := range tree {
		if tree[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func findBusiness(c models.Category, id string) (int, bool) {
	for i := range c.Businesses {
		if c.Businesses[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func findProduct(b models.Business, id string) (int, bool) {
	for i := range b.Products {
		if b.Products[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func findService(b models.Business, id string) (int, bool) {
	for i := range b.Services {
		if b.Services[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// withBusiness structurally copies the path down to one business and
// applies fn to it, leaving every sibling untouched.
func withBusiness(tree models.Tree, categoryID, businessID string, fn func(models.Business) (models.Business, error)) (models.Tree, error) {
	i, ok := findCategory(tree, categoryID)
	if !ok {
		return nil, apperrors.NewNotFoundError("category", categoryID)
	}
	j, ok := findBusiness(tree[i], businessID)
	if !ok {
		return nil, apperrors.NewNotFoundError("business", businessID)
	}

	updated, err := fn(tree[i].Businesses[j].Clone())
	if err != nil {
		return nil, err
	}

	next := shallowCopy(tree)
	cat := tree[i]
	cat.Businesses = append([]models.Business(nil), tree[i].Businesses...)
	cat.Businesses[j] = updated
	next[i] = cat
	return next, nil
}

// ==========================
// Boundary validation
// ==========================

func validateCategory(c models.Category) error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
		return apperrors.NewInvalidInputError("category id and name are required")
	}
	return nil
}

func validateBusiness(b models.Business) error {
	if strings.TrimSpace(b.ID) == "" || strings.TrimSpace(b.Name) == "" {
		return apperrors.NewInvalidInputError("business id and name are required")
	}
	if b.Rating < 0 || b.Rating > 5 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("rating %.1f outside [0,5]", b.Rating))
	}
	return nil
}

func validateItem(id, name string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
		return apperrors.NewInvalidInputError("item id and name are required")
	}
	return nil
}
