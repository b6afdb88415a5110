package transaction

// CategoryType distinguishes where a category assignment came from.
type CategoryType string

const (
	// CategoryTypeLedger is a category assigned in the budgeting ledger.
	CategoryTypeLedger CategoryType = "ledger"

	// CategoryTypeInferred is a category inferred from bank transaction text.
	CategoryTypeInferred CategoryType = "inferred"

	// CategoryTypeUnknown marks the absence of a category.
	CategoryTypeUnknown CategoryType = "unknown"
)

// Category is a budget category from the ledger's catalog.
type Category struct {
	ID        string
	Name      string
	GroupName string
	Type      CategoryType
}

// UnknownCategory returns the sentinel used instead of a nil category.
func UnknownCategory() Category {
	return Category{Type: CategoryTypeUnknown}
}

// IsUnknown reports whether this is the absence sentinel.
func (c Category) IsUnknown() bool {
	return c.Type == CategoryTypeUnknown || c.Type == ""
}
