package errx

// Type represents the category of error
type Type string

const (
	// TypeInternal is a failure inside this process
	TypeInternal Type = "INTERNAL"

	// TypeValidation is malformed or incomplete input
	TypeValidation Type = "VALIDATION"

	// TypeNotFound is a lookup that matched nothing
	TypeNotFound Type = "NOT_FOUND"

	// TypeBusiness is a rule violation on otherwise valid input
	TypeBusiness Type = "BUSINESS"

	// TypeExternal is a failure reported by a downstream service
	TypeExternal Type = "EXTERNAL"
)

// String returns the string representation of the error type
func (t Type) String() string {
	return string(t)
}
