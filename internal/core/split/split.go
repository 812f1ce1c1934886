// Package split explodes registry messages that announce several lots into
// one record per lot. The extractor joins multi-valued fields with the
// "&&&" delimiter; all other fields are copied into every exploded row.
package split

import (
	"strings"

	"github.com/example/lotledger/internal/models"
)

// Separator joins multi-valued fields in extractor output.
const Separator = "&&&"

// multiFields are the fields the extractor may emit as delimited lists.
var multiFields = []string{
	models.FieldLotNumber,
	models.FieldAssetDescription,
	models.FieldAssetClassification,
	models.FieldPrice,
	models.FieldContractStatus,
	models.FieldResultStatus,
}

// Explode expands one raw message into one row per announced lot. A message
// without delimited fields comes back as a single row. Fields shorter than
// the widest list pad with the empty string; rows never share map storage.
func Explode(raw models.RawMessage) []models.RawMessage {
	parts := make(map[string][]string, len(multiFields))
	width := 1
	for _, field := range multiFields {
		value := raw[field]
		if value == "" {
			continue
		}
		// The extractor occasionally emits "&&& " with a trailing space.
		value = strings.ReplaceAll(value, Separator+" ", Separator)
		split := strings.Split(value, Separator)
		parts[field] = split
		if len(split) > width {
			width = len(split)
		}
	}

	rows := make([]models.RawMessage, 0, width)
	for i := 0; i < width; i++ {
		row := raw.Clone()
		for _, field := range multiFields {
			split, ok := parts[field]
			if !ok {
				continue
			}
			if i < len(split) {
				row[field] = strings.TrimSpace(split[i])
			} else {
				row[field] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
