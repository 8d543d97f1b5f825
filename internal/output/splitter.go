package output

import (
	"fmt"

	"github.com/bnema/element-filter/internal/index"
)

// MaxDocumentsPerFile is the default chunk size for index output files
const MaxDocumentsPerFile = 1000

// Splitter splits documents into chunks of at most maxDocs
type Splitter struct {
	maxDocs int
}

// NewSplitter creates a splitter with the given max documents per file
func NewSplitter(maxDocs int) *Splitter {
	if maxDocs <= 0 {
		maxDocs = MaxDocumentsPerFile
	}
	return &Splitter{maxDocs: maxDocs}
}

// Split divides documents into multiple files if needed
// Returns a map of file name -> documents
func (s *Splitter) Split(docs []index.Document, baseName string) map[string][]index.Document {
	result := make(map[string][]index.Document)

	if len(docs) <= s.maxDocs {
		result[baseName] = docs
		return result
	}

	numParts := (len(docs) + s.maxDocs - 1) / s.maxDocs

	for i := 0; i < numParts; i++ {
		start := i * s.maxDocs
		end := start + s.maxDocs
		if end > len(docs) {
			end = len(docs)
		}

		filename := fmt.Sprintf("%s-part%d", baseName, i+1)
		result[filename] = docs[start:end]
	}

	return result
}

// Deduplicate removes documents with an already seen ID, keeping the first
func Deduplicate(docs []index.Document) []index.Document {
	seen := make(map[string]bool)
	result := make([]index.Document, 0, len(docs))

	for _, d := range docs {
		if !seen[d.ID] {
			seen[d.ID] = true
			result = append(result, d)
		}
	}

	return result
}
