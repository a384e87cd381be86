package entity

const NoResultsFound = "No results found"

type SearchResult struct {
	URL    string   `json:"url"`
	Errors []string `json:"errors"`
}

// EmptySearchResult is what callers see when nothing was located.
func EmptySearchResult() SearchResult {
	return SearchResult{URL: "", Errors: []string{NoResultsFound}}
}

type NotFoundReason string

const (
	NotFoundNoResponse      NotFoundReason = "no_response"
	NotFoundEmptyResult     NotFoundReason = "empty_result"
	NotFoundEmptyCompletion NotFoundReason = "empty_completion"
)

// SearchOutcome is either Found with a decoded result or NotFound with the
// reason the pipeline stopped early.
type SearchOutcome struct {
	found  bool
	result SearchResult
	reason NotFoundReason
}

func Found(result SearchResult) SearchOutcome {
	return SearchOutcome{found: true, result: result}
}

func NotFound(reason NotFoundReason) SearchOutcome {
	return SearchOutcome{reason: reason}
}

func (o SearchOutcome) IsFound() bool {
	return o.found
}

// Reason is empty for Found outcomes.
func (o SearchOutcome) Reason() NotFoundReason {
	return o.reason
}

func (o SearchOutcome) Result() SearchResult {
	if !o.found {
		return EmptySearchResult()
	}
	return o.result
}
