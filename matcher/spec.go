// Package matcher binds a flat list of supplied outputs to an ordered field
// specification, or fails with a typed error.
//
// A specification is a list of FieldSpecs, each combining a predicate (what
// an output must look like) with a cardinality (how many outputs the field
// consumes). Matching walks the fields in declaration order and consumes
// outputs from the supplied pool; every supplied output must end up bound
// to exactly one field.
package matcher

import (
	"fmt"

	"github.com/gaze-network/uint128"

	"github.com/runepool/librunepool-go/utxo"
)

// RunesPresence constrains whether a candidate output may carry runes.
type RunesPresence int

const (
	// RunesUnset applies the field's default: no constraint, except on
	// anchored fields where it means RunesNone.
	RunesUnset RunesPresence = iota
	// RunesAny accepts outputs with or without runes.
	RunesAny
	// RunesNone requires an output carrying no runes.
	RunesNone
	// RunesSome requires an output carrying at least one rune.
	RunesSome
)

// Predicate is the conjunction of constraints a candidate output must
// satisfy. Nil pointer fields and empty strings mean "unconstrained".
type Predicate struct {
	// Value requires an exact satoshi value.
	Value *uint64
	// Runes constrains rune presence.
	Runes RunesPresence
	// RuneID requires the output to carry this rune.
	RuneID *utxo.RuneID
	// RuneAmount requires the exact balance of RuneID. Only valid together
	// with RuneID.
	RuneAmount *uint128.Uint128
	// Anchor names an account target; the output must be the one recorded
	// against that target. Anchored fields default to RunesNone unless
	// Runes is set explicitly.
	Anchor string
}

// Cardinality says how many outputs a field consumes.
type Cardinality int

const (
	// CardinalitySingle consumes exactly one output.
	CardinalitySingle Cardinality = iota
	// CardinalityOptional consumes one output if a match exists, none
	// otherwise.
	CardinalityOptional
	// CardinalityArray consumes exactly Count outputs.
	CardinalityArray
	// CardinalityRest consumes every output still unconsumed. A rest field
	// carries no predicate and must be the final field.
	CardinalityRest
)

// FieldSpec is one field of a specification.
type FieldSpec struct {
	Name        string
	Predicate   Predicate
	Cardinality Cardinality
	// Count is the declared size of a CardinalityArray field.
	Count int
}

// Value builds a pointer for Predicate.Value.
func Value(v uint64) *uint64 { return &v }

// Rune builds a pointer for Predicate.RuneID.
func Rune(id utxo.RuneID) *utxo.RuneID { return &id }

// RuneAmount builds a pointer for Predicate.RuneAmount.
func RuneAmount(v uint128.Uint128) *uint128.Uint128 { return &v }

// ValidateSpec checks the structural rules of a specification:
// field names are non-empty and unique, at most one anchor field, at most
// one rest field and only in final position, rest fields carry no
// predicate, array counts are positive, and a rune amount constraint is
// only stated together with a rune id.
func ValidateSpec(spec []FieldSpec) error {
	names := make(map[string]struct{}, len(spec))
	anchors := 0
	for i, f := range spec {
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidSpec, i)
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSpec, f.Name)
		}
		names[f.Name] = struct{}{}

		if f.Predicate.Anchor != "" {
			anchors++
			if anchors > 1 {
				return fmt.Errorf("%w: more than one anchor field", ErrInvalidSpec)
			}
		}
		if f.Predicate.RuneAmount != nil && f.Predicate.RuneID == nil {
			return fmt.Errorf("%w: field %q states a rune amount without a rune id", ErrInvalidSpec, f.Name)
		}
		if f.Predicate.Runes == RunesNone && f.Predicate.RuneID != nil {
			return fmt.Errorf("%w: field %q requires a rune on a runeless output", ErrInvalidSpec, f.Name)
		}

		switch f.Cardinality {
		case CardinalitySingle, CardinalityOptional:
		case CardinalityArray:
			if f.Count <= 0 {
				return fmt.Errorf("%w: field %q has non-positive array size", ErrInvalidSpec, f.Name)
			}
		case CardinalityRest:
			if i != len(spec)-1 {
				return fmt.Errorf("%w: rest field %q is not last", ErrInvalidSpec, f.Name)
			}
			if !predicateEmpty(f.Predicate) {
				return fmt.Errorf("%w: rest field %q carries a predicate", ErrInvalidSpec, f.Name)
			}
		default:
			return fmt.Errorf("%w: field %q has unknown cardinality", ErrInvalidSpec, f.Name)
		}
	}
	return nil
}

func predicateEmpty(p Predicate) bool {
	return p.Value == nil && p.Runes == RunesUnset &&
		p.RuneID == nil && p.RuneAmount == nil && p.Anchor == ""
}

// runesRequirement resolves the effective rune-presence constraint of p.
// Anchored fields default to RunesNone.
func runesRequirement(p Predicate) RunesPresence {
	if p.Runes != RunesUnset {
		return p.Runes
	}
	if p.Anchor != "" {
		return RunesNone
	}
	return RunesAny
}
