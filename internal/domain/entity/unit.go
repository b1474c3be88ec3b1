// Package entity contains the core business objects of the project.
package entity

// Unit represents the unit of measure an order line is counted in.
type Unit string

const (
	// UnitPc is a single piece.
	UnitPc Unit = "Pc"
	// UnitOuter is an outer pack of pieces.
	UnitOuter Unit = "Outer"
	// UnitCase is a full case of outers.
	UnitCase Unit = "Case"
)

// String returns the string representation of the Unit.
func (u Unit) String() string {
	return string(u)
}

// IsValid checks if the Unit is a valid value.
func (u Unit) IsValid() bool {
	switch u {
	case UnitPc, UnitOuter, UnitCase:
		return true
	default:
		return false
	}
}
