package domain

// Index field names shared between the index manager and adapters.
const (
	FieldID             = "id"
	FieldContent        = "content"
	FieldEmbedding      = "embedding"
	FieldCategory       = "category"
	FieldSourcePage     = "sourcepage"
	FieldSourceFile     = "sourcefile"
	FieldStorageURL     = "storageUrl"
	FieldOIDs           = "oids"
	FieldGroups         = "groups"
	FieldParentID       = "parent_id"
	FieldImageEmbedding = "imageEmbedding"
)

// IndexDocument is the record shape upserted into the search index.
// The ID is unique per (file identity, ordinal) pair, which makes
// re-upserts overwrite in place rather than duplicate.
type IndexDocument struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Category       string    `json:"category,omitempty"`
	SourcePage     string    `json:"sourcepage"`
	SourceFile     string    `json:"sourcefile"`
	StorageURL     string    `json:"storageUrl,omitempty"`
	Embedding      []float32 `json:"embedding,omitempty"`
	ImageEmbedding []float32 `json:"imageEmbedding,omitempty"`
	OIDs           []string  `json:"oids,omitempty"`
	Groups         []string  `json:"groups,omitempty"`
	ParentID       string    `json:"parent_id,omitempty"`
}

// IndexField describes one field in the index schema.
type IndexField struct {
	// Name is the field name.
	Name string `json:"name"`

	// Type is the field's wire type ("string", "string_collection",
	// "vector").
	Type string `json:"type"`

	// Key marks the document key field.
	Key bool `json:"key,omitempty"`

	// Searchable enables full-text or vector search over the field.
	Searchable bool `json:"searchable,omitempty"`

	// Filterable enables filter expressions over the field.
	Filterable bool `json:"filterable,omitempty"`

	// Facetable enables facet aggregation over the field.
	Facetable bool `json:"facetable,omitempty"`

	// Dimensions is the vector length for vector fields.
	Dimensions int `json:"dimensions,omitempty"`

	// VectorProfile names the vector search profile for vector fields.
	VectorProfile string `json:"vectorProfile,omitempty"`

	// Analyzer optionally names the text analyzer for searchable fields.
	Analyzer string `json:"analyzer,omitempty"`
}

// IndexSchema is the full index definition managed by the index
// manager. Schema evolution only ever appends fields; existing fields
// are never dropped or renamed.
type IndexSchema struct {
	// Name is the index name.
	Name string `json:"name"`

	// Fields is the ordered field set.
	Fields []IndexField `json:"fields"`

	// SemanticContentField names the field prioritised by semantic
	// ranking.
	SemanticContentField string `json:"semanticContentField,omitempty"`

	// VectorAlgorithm names the approximate nearest neighbour
	// algorithm for the vector profile ("hnsw").
	VectorAlgorithm string `json:"vectorAlgorithm,omitempty"`

	// VectorMetric is the distance metric ("cosine").
	VectorMetric string `json:"vectorMetric,omitempty"`
}

// HasField reports whether the schema already defines a field.
func (s *IndexSchema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
