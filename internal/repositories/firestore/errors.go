package firestore

// notFoundError satisfies repositories.RepositoryError for synthesized
// not-found conditions (empty query results, blank identifiers).
type notFoundError struct {
	op  string
	err error
}

func (e *notFoundError) Error() string {
	if e.op != "" {
		return e.op + ": " + e.err.Error()
	}
	return e.err.Error()
}

func (e *notFoundError) Unwrap() error       { return e.err }
func (e *notFoundError) IsNotFound() bool    { return true }
func (e *notFoundError) IsConflict() bool    { return false }
func (e *notFoundError) IsUnavailable() bool { return false }

func notFound(op string, err error) error {
	return &notFoundError{op: op, err: err}
}
