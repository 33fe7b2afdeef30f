package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"csekit/internal/cse"
	apperrors "csekit/internal/errors"
)

// CatalogMetadata records when and where a category catalog was fetched.
type CatalogMetadata struct {
	FetchDate       time.Time `json:"fetch_date"`
	TotalCategories int       `json:"total_categories"`
	Source          string    `json:"source"`
}

// CategoryCatalog is the persisted announcement category catalog.
type CategoryCatalog struct {
	Metadata   CatalogMetadata            `json:"metadata"`
	Categories []cse.AnnouncementCategory `json:"categories"`
}

// DividendCategories returns the categories whose names mention dividends.
func (c *CategoryCatalog) DividendCategories() []cse.AnnouncementCategory {
	var result []cse.AnnouncementCategory
	for _, category := range c.Categories {
		if strings.Contains(strings.ToUpper(category.CategoryName), "DIVIDEND") {
			result = append(result, category)
		}
	}
	return result
}

// CategoriesPath returns the path of the category catalog file.
func (s *Store) CategoriesPath() string {
	return filepath.Join(s.dir, categoriesFile)
}

// SaveCategories writes the catalog with fetch metadata.
func (s *Store) SaveCategories(categories []cse.AnnouncementCategory) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to create data directory")
	}

	catalog := CategoryCatalog{
		Metadata: CatalogMetadata{
			FetchDate:       time.Now(),
			TotalCategories: len(categories),
			Source:          "CSE API - " + cse.EndpointAnnouncementCategories,
		},
		Categories: categories,
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to encode category catalog")
	}

	if err := os.WriteFile(s.CategoriesPath(), data, 0644); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to write category catalog")
	}

	s.log.Info("saved category catalog", "path", s.CategoriesPath(), "count", len(categories))
	return nil
}

// LoadCategories reads the persisted catalog.
func (s *Store) LoadCategories() (*CategoryCatalog, error) {
	data, err := os.ReadFile(s.CategoriesPath())
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to read category catalog")
	}

	var catalog CategoryCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to decode category catalog")
	}
	return &catalog, nil
}
