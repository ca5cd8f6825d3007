package forecast

import "sort"

// oneHotEncoder maps the six categorical predictors onto a fixed binary
// feature space. The vocabulary is frozen at fit time; values never seen in
// training encode to the all-zero indicator block for their column instead of
// failing, so out-of-vocabulary inputs degrade to "no signal" silently.
type oneHotEncoder struct {
	columns []string
	vocab   []map[string]int // per column: value -> slot within the column block
	offsets []int            // start of each column block in the feature vector
	width   int
}

func newOneHotEncoder(columns []string) *oneHotEncoder {
	return &oneHotEncoder{columns: columns}
}

// fit builds the per-column vocabularies from the training rows. Slots are
// assigned in sorted value order so encoding is stable across runs.
func (e *oneHotEncoder) fit(rows [][]string) {
	e.vocab = make([]map[string]int, len(e.columns))
	e.offsets = make([]int, len(e.columns))

	for col := range e.columns {
		seen := make(map[string]struct{})
		for _, row := range rows {
			seen[row[col]] = struct{}{}
		}

		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)

		e.vocab[col] = make(map[string]int, len(values))
		for slot, v := range values {
			e.vocab[col][v] = slot
		}

		e.offsets[col] = e.width
		e.width += len(values)
	}
}

// transform encodes one record. Unknown values leave their column block zero.
func (e *oneHotEncoder) transform(values []string) []float64 {
	features := make([]float64, e.width)
	for col, value := range values {
		if slot, ok := e.vocab[col][value]; ok {
			features[e.offsets[col]+slot] = 1
		}
	}
	return features
}

// vocabulary returns the sorted training-time values for one column
func (e *oneHotEncoder) vocabulary(col int) []string {
	values := make([]string, 0, len(e.vocab[col]))
	for v := range e.vocab[col] {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
