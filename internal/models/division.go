package models

// Division identifies one of the two brand storefronts sharing this backend.
type Division string

const (
	DivisionToys  Division = "toys"
	DivisionParty Division = "party"
)

// DefaultDivision is used whenever a stored or submitted division value is
// absent or unrecognized.
const DefaultDivision = DivisionToys

// ParseDivision maps a raw string to a Division, falling back to
// DefaultDivision for anything it does not recognize.
func ParseDivision(raw string) Division {
	switch Division(raw) {
	case DivisionToys, DivisionParty:
		return Division(raw)
	default:
		return DefaultDivision
	}
}

// Valid reports whether d is one of the known divisions.
func (d Division) Valid() bool {
	return d == DivisionToys || d == DivisionParty
}
