package tabldoc

import (
	"context"
	"strings"
)

// TableSummary describes one table as listed on the index page.
type TableSummary struct {
	Number        string `json:"number"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	DeliveryClass string `json:"delivery_class"`
	DetailURL     string `json:"detail_url"`
}

// Ref is a named reference to an auxiliary definition page, such as a data
// element or a domain. URL is empty when the name is not hyperlinked.
type Ref struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FieldRecord describes one field of a table.
type FieldRecord struct {
	Field            string `json:"field"`
	Key              bool   `json:"key"`
	DataElement      Ref    `json:"data_element"`
	Domain           Ref    `json:"domain"`
	DataType         string `json:"data_type"`
	Length           string `json:"length"`
	Decimals         string `json:"decimals"`
	ShortDescription string `json:"short_description"`
}

// TableRecord is a table summary merged with its fields.
// Fields are in document order.
type TableRecord struct {
	Number        string        `json:"number"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	DeliveryClass string        `json:"delivery_class"`
	Fields        []FieldRecord `json:"fields"`
}

// Validate returns an error if the record contains invalid fields.
func (r *TableRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return Errorf(EINVALID, "table name required")
	}
	for i, f := range r.Fields {
		if strings.TrimSpace(f.Field) == "" {
			return Errorf(EINVALID, "table %s: field %d has no name", r.Name, i)
		}
	}
	return nil
}

// Assemble merges a table summary with its field list.
// The field slice is copied so the record does not share state with its producer.
func Assemble(summary TableSummary, fields []FieldRecord) *TableRecord {
	return &TableRecord{
		Number:        summary.Number,
		Name:          summary.Name,
		Description:   summary.Description,
		Category:      summary.Category,
		DeliveryClass: summary.DeliveryClass,
		Fields:        append([]FieldRecord(nil), fields...),
	}
}

// IndexFetcher discovers tables from the index page.
type IndexFetcher interface {
	// FetchIndex returns at most limit table summaries in index order.
	FetchIndex(ctx context.Context, limit int) ([]TableSummary, error)
}

// FieldFetcher retrieves the field definitions of a single table.
type FieldFetcher interface {
	// FetchFields returns the fields listed on the table's detail page.
	// Returns EFETCH if the page cannot be retrieved and EPARSE if no
	// field-definition table is found.
	FetchFields(ctx context.Context, detailURL string) ([]FieldRecord, error)
}

// TableWriter persists table records.
type TableWriter interface {
	// WriteTable stores the record, replacing any previous record with the same name.
	WriteTable(ctx context.Context, rec *TableRecord) error
}
