// Package backend selects and constructs the kv backend the document
// store persists to, based on configuration.
package backend

// Type names a persistence backend.
type Type string

const (
	SQLite Type = "sqlite"
	File   Type = "file"
	Memory Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, File, Memory:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to come up.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// File specific
	DataDirectory string
}

// CleanupFunc releases backend resources; may be nil.
type CleanupFunc func() error
