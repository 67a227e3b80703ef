package core

import (
	"errors"
	"strings"
	"time"
)

const (
	FieldName        FilterField = "nombre"
	FieldAmount      FilterField = "monto"
	FieldDescription FilterField = "descripcion"
)

type (
	// FilterField selects which record field a search term is matched against.
	FilterField string

	// Record is one stored receipt entry. Records are immutable once created;
	// the only lifecycle operations are create and delete.
	Record struct {
		ID          int64
		Name        string
		Date        string // free-form date text, used as the sort and filter key
		Amount      string // stored verbatim, no numeric parsing
		Description string
		ImageRef    string // filename, local path, or absolute URL
		CreatedAt   time.Time
	}

	// Filter narrows a listing. Term is a substring match on the chosen field;
	// Date is an exact match. When both are set they compose with AND.
	Filter struct {
		Term  string
		Field FilterField
		Date  string
	}
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmptyName    = errors.New("empty name")
	ErrEmptyDate    = errors.New("empty date")
	ErrMissingImage = errors.New("missing image reference")
)

// IsValid returns true if the filter field is one of the known fields.
func (f FilterField) IsValid() bool {
	switch f {
	case FieldName, FieldAmount, FieldDescription:
		return true
	default:
		return false
	}
}

func (f FilterField) String() string {
	return string(f)
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(r.ImageRef) == "" {
		return ErrMissingImage
	}
	return nil
}

// IsEmpty reports whether the filter imposes no constraint at all.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Term) == "" && strings.TrimSpace(f.Date) == ""
}

// Normalize trims whitespace and defaults the field to nombre, mirroring the
// web form which always submits a tipo but may leave it blank.
func (f Filter) Normalize() Filter {
	f.Term = strings.TrimSpace(f.Term)
	f.Date = strings.TrimSpace(f.Date)
	if !f.Field.IsValid() {
		f.Field = FieldName
	}
	return f
}

// FieldValue returns the record field the filter term is matched against.
func (f Filter) FieldValue(r Record) string {
	switch f.Field {
	case FieldAmount:
		return r.Amount
	case FieldDescription:
		return r.Description
	default:
		return r.Name
	}
}

// Matches applies the filter in-process with case-sensitive substring
// semantics. The SQL-backed stores push filtering into the query instead;
// this is the reference behavior used by the key-value store.
func (f Filter) Matches(r Record) bool {
	f = f.Normalize()
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Term != "" && !strings.Contains(f.FieldValue(r), f.Term) {
		return false
	}
	return true
}
