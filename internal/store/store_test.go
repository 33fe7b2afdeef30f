package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csekit/internal/cse"
)

func sampleCompanies() []cse.Company {
	traded := int64(1756130400000)
	return []cse.Company{
		{SecurityID: 642, Symbol: "ABAN.N0000", Name: "ABANS ELECTRICALS PLC", LastTradedTime: &traded},
		{SecurityID: 305, Symbol: "LOLC.N0000", Name: "LOLC HOLDINGS PLC", LastTradedTime: &traded},
		{SecurityID: 88, Symbol: "BIL.N0000", Name: "BROWNS INVESTMENTS PLC"},
	}
}

func TestSaveAndLoadCompanies(t *testing.T) {
	s := New(t.TempDir())
	defer s.Close()

	require.NoError(t, s.SaveCompanies(sampleCompanies()))

	loaded, err := s.LoadCompanies()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "ABAN.N0000", loaded[0].Symbol)
	assert.True(t, loaded[0].Active())
	assert.False(t, loaded[2].Active())
}

func TestLoadCompaniesMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	defer s.Close()

	_, err := s.LoadCompanies()
	assert.Error(t, err)
}

func TestFindSecurityID(t *testing.T) {
	s := New(t.TempDir())
	defer s.Close()
	require.NoError(t, s.SaveCompanies(sampleCompanies()))

	t.Run("by symbol", func(t *testing.T) {
		id, ok := s.FindSecurityID("ABAN")
		require.True(t, ok)
		assert.Equal(t, int64(642), id)
	})

	t.Run("by name, case-insensitive", func(t *testing.T) {
		id, ok := s.FindSecurityID("lolc holdings")
		require.True(t, ok)
		assert.Equal(t, int64(305), id)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := s.FindSecurityID("NO SUCH COMPANY")
		assert.False(t, ok)
		// Negative result is cached; second lookup hits the cache path.
		_, ok = s.FindSecurityID("NO SUCH COMPANY")
		assert.False(t, ok)
	})
}

func TestCompanyBySecurityID(t *testing.T) {
	s := New(t.TempDir())
	defer s.Close()
	require.NoError(t, s.SaveCompanies(sampleCompanies()))

	company, ok := s.CompanyBySecurityID(88)
	require.True(t, ok)
	assert.Equal(t, "BROWNS INVESTMENTS PLC", company.Name)

	_, ok = s.CompanyBySecurityID(999999)
	assert.False(t, ok)
}

func TestCategoryCatalog(t *testing.T) {
	s := New(t.TempDir())
	defer s.Close()

	categories := []cse.AnnouncementCategory{
		{ID: 1, CategoryName: "CASH DIVIDEND"},
		{ID: 2, CategoryName: "ANNUAL GENERAL MEETING"},
		{ID: 3, CategoryName: "SCRIP DIVIDEND"},
		{ID: 4, CategoryName: "RIGHTS ISSUE"},
	}
	require.NoError(t, s.SaveCategories(categories))

	catalog, err := s.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, 4, catalog.Metadata.TotalCategories)
	assert.Len(t, catalog.Categories, 4)

	dividends := catalog.DividendCategories()
	require.Len(t, dividends, 2)
	assert.Equal(t, "CASH DIVIDEND", dividends[0].CategoryName)
	assert.Equal(t, "SCRIP DIVIDEND", dividends[1].CategoryName)
}
