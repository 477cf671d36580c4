// Package search provides full-text search over employees using Bleve.
package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/staffbook/staffql/internal/record"
)

// DefaultSearchLimit is the default maximum number of search results.
const DefaultSearchLimit = 1000

// Index wraps a Bleve in-memory index for searching employees.
type Index struct {
	index bleve.Index
}

// employeeDocument is the structure stored in the Bleve index.
type employeeDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	return &Index{index: idx}, nil
}

// buildIndexMapping creates the Bleve index mapping for employee documents.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	employeeMapping := bleve.NewDocumentMapping()
	employeeMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	employeeMapping.AddFieldMappingsAt("gender", keywordFieldMapping)
	for _, field := range []string{"name", "first_name", "last_name", "email", "designation", "department"} {
		employeeMapping.AddFieldMappingsAt(field, textFieldMapping)
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = employeeMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

func newDocument(e *record.Employee) employeeDocument {
	return employeeDocument{
		ID:          e.ID,
		Name:        strings.TrimSpace(record.StringValue(e.FirstName) + " " + record.StringValue(e.LastName)),
		FirstName:   record.StringValue(e.FirstName),
		LastName:    record.StringValue(e.LastName),
		Email:       record.StringValue(e.Email),
		Gender:      record.StringValue(e.Gender),
		Designation: record.StringValue(e.Designation),
		Department:  record.StringValue(e.Department),
	}
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

// IndexEmployee adds or updates an employee in the search index.
func (idx *Index) IndexEmployee(e *record.Employee) error {
	return idx.index.Index(e.ID, newDocument(e))
}

// IndexEmployees indexes multiple employees in a batch.
func (idx *Index) IndexEmployees(employees []*record.Employee) error {
	batch := idx.index.NewBatch()
	for _, e := range employees {
		if err := batch.Index(e.ID, newDocument(e)); err != nil {
			return err
		}
	}
	return idx.index.Batch(batch)
}

// DeleteEmployee removes an employee from the search index.
func (idx *Index) DeleteEmployee(id string) error {
	return idx.index.Delete(id)
}

// Count returns the number of indexed employees.
func (idx *Index) Count() (uint64, error) {
	return idx.index.DocCount()
}

// Search executes a query string and returns matching employee IDs, best match first.
// The limit parameter controls the maximum number of results (0 uses DefaultSearchLimit).
//
// Query string syntax supports plain terms ("engineer"), required/excluded terms
// ("+sales -intern"), wildcards ("eng*"), phrases ("\"ada lovelace\"") and
// field-specific terms ("department:sales").
func (idx *Index) Search(queryStr string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	query := bleve.NewQueryStringQuery(queryStr)

	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"id"}

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}

	return ids, nil
}
