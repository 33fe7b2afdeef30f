package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"csekit/internal/cache"
	"csekit/internal/cse"
	apperrors "csekit/internal/errors"
	"csekit/internal/logger"
)

const (
	companiesFile  = "data.json"
	categoriesFile = "announcement_categories.json"

	lookupTTL = 30 * time.Minute
)

// Store persists the company register and the announcement category catalog
// under a data directory. Symbol and name lookups are cached in memory.
type Store struct {
	dir       string
	cache     *cache.MemoryCache
	log       logger.Logger
	companies []cse.Company
}

// New creates a store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: cache.NewMemoryCache(5000),
		log:   logger.Default().WithField("component", "store"),
	}
}

// Close releases the lookup cache.
func (s *Store) Close() {
	s.cache.Close()
}

// CompaniesPath returns the path of the company register file.
func (s *Store) CompaniesPath() string {
	return filepath.Join(s.dir, companiesFile)
}

// SaveCompanies writes the full company list to data.json.
func (s *Store) SaveCompanies(companies []cse.Company) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to create data directory")
	}

	data, err := json.MarshalIndent(companies, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to encode companies")
	}

	if err := os.WriteFile(s.CompaniesPath(), data, 0644); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to write companies file")
	}

	s.companies = companies
	s.cache.Clear()
	s.log.Info("saved company register", "path", s.CompaniesPath(), "count", len(companies))
	return nil
}

// LoadCompanies reads the company register from data.json. The list is kept
// in memory for lookups.
func (s *Store) LoadCompanies() ([]cse.Company, error) {
	data, err := os.ReadFile(s.CompaniesPath())
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to read companies file")
	}

	var companies []cse.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrCodeStore, "failed to decode companies file")
	}

	s.companies = companies
	return companies, nil
}

// FindSecurityID resolves a symbol or company name fragment to a security ID.
// Matching is case-insensitive substring, the way the register is usually
// queried by hand.
func (s *Store) FindSecurityID(symbolOrName string) (int64, bool) {
	search := strings.ToUpper(symbolOrName)

	if cached, err := s.cache.Get("secid:" + search); err == nil {
		id := cached.(int64)
		return id, id >= 0
	}

	for _, company := range s.companies {
		if strings.Contains(strings.ToUpper(company.Symbol), search) ||
			strings.Contains(strings.ToUpper(company.Name), search) {
			s.cache.Set("secid:"+search, company.SecurityID, lookupTTL)
			return company.SecurityID, true
		}
	}

	s.cache.Set("secid:"+search, int64(-1), lookupTTL)
	return 0, false
}

// CompanyBySecurityID returns the register entry for a security ID.
func (s *Store) CompanyBySecurityID(id int64) (*cse.Company, bool) {
	for i := range s.companies {
		if s.companies[i].SecurityID == id {
			return &s.companies[i], true
		}
	}
	return nil, false
}

// Companies returns the loaded register.
func (s *Store) Companies() []cse.Company {
	return s.companies
}

// EnsureDir creates a directory if it does not exist and returns its path.
func EnsureDir(parts ...string) (string, error) {
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}
