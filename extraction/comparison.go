package extraction

// MissingCellValue fills comparison cells for document and field
// combinations that have no extraction.
const MissingCellValue = "N/A"

// DocumentRef identifies one document column in a comparison table.
type DocumentRef struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
}

// ComparisonEntry is the per-document extraction summary fed to the
// aggregator, typically sourced from persisted extraction rows.
type ComparisonEntry struct {
	ExtractionID    string
	DocumentID      string
	FieldName       string
	FieldType       FieldType
	ExtractedValue  *string
	NormalizedValue *string
	ConfidenceScore float64
	Status          string
}

// ComparisonCell is one document's result within a comparison row. Missing
// combinations carry the sentinel value with zero confidence.
type ComparisonCell struct {
	ExtractionID    string  `json:"id,omitempty"`
	ExtractedValue  *string `json:"extracted_value"`
	NormalizedValue *string `json:"normalized_value,omitempty"`
	ConfidenceScore float64 `json:"confidence_score"`
	Status          string  `json:"status,omitempty"`
}

// ComparisonRow aligns one field's extractions across every document.
type ComparisonRow struct {
	FieldName       string                    `json:"field_name"`
	FieldType       FieldType                 `json:"field_type"`
	DocumentResults map[string]ComparisonCell `json:"document_results"`
}

// AggregateComparison groups extraction entries into one row per field name,
// rows ordered by first appearance of the field in entries. Every listed
// document gets a cell in every row; combinations without an extraction
// receive the sentinel cell, duplicate entries for the same document and
// field keep the last one seen, and entries for unlisted documents are
// dropped. No documents or no entries yields an empty row list.
func AggregateComparison(documents []DocumentRef, entries []ComparisonEntry) []ComparisonRow {
	rows := make([]ComparisonRow, 0)
	if len(documents) == 0 || len(entries) == 0 {
		return rows
	}

	type fieldGroup struct {
		fieldType FieldType
		cells     map[string]ComparisonCell
	}

	order := make([]string, 0)
	groups := make(map[string]*fieldGroup)

	for _, entry := range entries {
		group, ok := groups[entry.FieldName]
		if !ok {
			group = &fieldGroup{
				fieldType: entry.FieldType,
				cells:     make(map[string]ComparisonCell),
			}
			groups[entry.FieldName] = group
			order = append(order, entry.FieldName)
		}
		group.cells[entry.DocumentID] = ComparisonCell{
			ExtractionID:    entry.ExtractionID,
			ExtractedValue:  entry.ExtractedValue,
			NormalizedValue: entry.NormalizedValue,
			ConfidenceScore: entry.ConfidenceScore,
			Status:          entry.Status,
		}
	}

	for _, fieldName := range order {
		group := groups[fieldName]
		results := make(map[string]ComparisonCell, len(documents))
		for _, doc := range documents {
			cell, ok := group.cells[doc.ID]
			if !ok {
				missing := MissingCellValue
				cell = ComparisonCell{
					ExtractedValue:  &missing,
					ConfidenceScore: 0.0,
				}
			}
			results[doc.ID] = cell
		}
		rows = append(rows, ComparisonRow{
			FieldName:       fieldName,
			FieldType:       group.fieldType,
			DocumentResults: results,
		})
	}

	return rows
}

// FlattenTable renders comparison rows as a rectangular table whose header is
// Field Name, Field Type, then one column per document filename. Cells carry
// the document's extracted value, or the sentinel when the value is absent.
func FlattenTable(documents []DocumentRef, rows []ComparisonRow) [][]string {
	header := make([]string, 0, len(documents)+2)
	header = append(header, "Field Name", "Field Type")
	for _, doc := range documents {
		header = append(header, doc.Filename)
	}

	table := make([][]string, 0, len(rows)+1)
	table = append(table, header)

	for _, row := range rows {
		record := make([]string, 0, len(documents)+2)
		record = append(record, row.FieldName, string(row.FieldType))
		for _, doc := range documents {
			value := MissingCellValue
			if cell, ok := row.DocumentResults[doc.ID]; ok && cell.ExtractedValue != nil && *cell.ExtractedValue != "" {
				value = *cell.ExtractedValue
			}
			record = append(record, value)
		}
		table = append(table, record)
	}

	return table
}
