package matcher

import (
	"fmt"

	"github.com/runepool/librunepool-go/utxo"
)

// AnchorResolver maps an anchor target name to the output currently
// recorded against that account.
type AnchorResolver interface {
	// AnchorMeta returns the recorded output for target. The second return
	// value is false when the target has nothing recorded.
	AnchorMeta(target string) (utxo.Meta, bool)
}

// AnchorMap is a ready-made AnchorResolver over a plain map.
type AnchorMap map[string]utxo.Meta

// AnchorMeta implements AnchorResolver.
func (m AnchorMap) AnchorMeta(target string) (utxo.Meta, bool) {
	meta, ok := m[target]
	return meta, ok
}

// Result holds the outputs bound to each field of a successful match.
type Result struct {
	bindings map[string][]*utxo.Info
	bound    int
}

// Get returns the outputs bound to the named field, nil when the field
// bound nothing.
func (r *Result) Get(field string) []*utxo.Info {
	return r.bindings[field]
}

// One returns the single output bound to the named field, or nil when the
// field bound zero or several.
func (r *Result) One(field string) *utxo.Info {
	if infos := r.bindings[field]; len(infos) == 1 {
		return infos[0]
	}
	return nil
}

// Len returns the total number of bound outputs.
func (r *Result) Len() int { return r.bound }

// Match binds supplied outputs to spec. The anchors resolver is consulted
// only when the spec contains an anchored field; it may be nil otherwise.
//
// Fields are processed strictly in declaration order. Each non-rest field
// scans the still-unconsumed pool in supplied order and consumes the first
// match; a rest field consumes the whole remainder. On success every
// supplied output is bound to exactly one field; anything left over is an
// error, as is any duplicate in the supplied list.
func Match(spec []FieldSpec, supplied []*utxo.Info, anchors AnchorResolver) (*Result, error) {
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}
	if err := checkDuplicates(supplied); err != nil {
		return nil, err
	}
	anchorMetas, err := resolveAnchors(spec, anchors)
	if err != nil {
		return nil, err
	}

	consumed := make([]bool, len(supplied))
	remaining := len(supplied)
	result := &Result{bindings: make(map[string][]*utxo.Info, len(spec))}

	for _, f := range spec {
		switch f.Cardinality {
		case CardinalityRest:
			for i, info := range supplied {
				if !consumed[i] {
					consumed[i] = true
					remaining--
					result.bind(f.Name, info)
				}
			}
		case CardinalityArray:
			taken := 0
			for i, info := range supplied {
				if taken == f.Count {
					break
				}
				if consumed[i] || !satisfies(f.Predicate, info, anchorMetas) {
					continue
				}
				consumed[i] = true
				remaining--
				result.bind(f.Name, info)
				taken++
			}
			if taken < f.Count {
				return nil, fmt.Errorf("%w: field %q bound %d of %d",
					ErrInvalidUtxoValue, f.Name, taken, f.Count)
			}
		default:
			idx := -1
			for i, info := range supplied {
				if !consumed[i] && satisfies(f.Predicate, info, anchorMetas) {
					idx = i
					break
				}
			}
			if idx < 0 {
				if f.Cardinality == CardinalityOptional {
					continue
				}
				return nil, fmt.Errorf("field %q: %w", f.Name,
					classifyMiss(f.Predicate, supplied, consumed, anchorMetas))
			}
			consumed[idx] = true
			remaining--
			result.bind(f.Name, supplied[idx])
		}
	}

	if remaining > 0 {
		return nil, fmt.Errorf("%w: %d unconsumed", ErrUnexpectedExtraUtxos, remaining)
	}
	return result, nil
}

func (r *Result) bind(field string, info *utxo.Info) {
	r.bindings[field] = append(r.bindings[field], info)
	r.bound++
}

func checkDuplicates(supplied []*utxo.Info) error {
	seen := make(map[utxo.Meta]struct{}, len(supplied))
	for _, info := range supplied {
		if _, dup := seen[info.Meta]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateUtxoMeta, info.Meta)
		}
		seen[info.Meta] = struct{}{}
	}
	return nil
}

// resolveAnchors resolves every anchor target before any matching starts,
// so a dangling target fails the whole instruction up front.
func resolveAnchors(spec []FieldSpec, anchors AnchorResolver) (map[string]utxo.Meta, error) {
	var metas map[string]utxo.Meta
	for _, f := range spec {
		target := f.Predicate.Anchor
		if target == "" {
			continue
		}
		if metas == nil {
			metas = make(map[string]utxo.Meta, 1)
		}
		if _, done := metas[target]; done {
			continue
		}
		if anchors == nil {
			return nil, fmt.Errorf("%w: %q", ErrAnchorTargetNotFound, target)
		}
		meta, ok := anchors.AnchorMeta(target)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrAnchorTargetNotFound, target)
		}
		metas[target] = meta
	}
	return metas, nil
}

func satisfies(p Predicate, info *utxo.Info, anchorMetas map[string]utxo.Meta) bool {
	if p.Anchor != "" && info.Meta != anchorMetas[p.Anchor] {
		return false
	}
	if p.Value != nil && info.Value != *p.Value {
		return false
	}
	switch runesRequirement(p) {
	case RunesNone:
		if info.HasRunes() {
			return false
		}
	case RunesSome:
		if !info.HasRunes() {
			return false
		}
	}
	if p.RuneID != nil {
		amount, ok := info.Runes.AmountOf(*p.RuneID)
		if !ok {
			return false
		}
		if p.RuneAmount != nil && amount.Cmp(*p.RuneAmount) != 0 {
			return false
		}
	}
	return true
}

// classifyMiss picks the most specific error for a required field that
// found no match among the unconsumed pool.
func classifyMiss(p Predicate, supplied []*utxo.Info, consumed []bool, anchorMetas map[string]utxo.Meta) error {
	pool := make([]*utxo.Info, 0, len(supplied))
	for i, info := range supplied {
		if !consumed[i] {
			pool = append(pool, info)
		}
	}
	if len(pool) == 0 {
		return ErrMissingRequiredUtxo
	}

	if p.Anchor != "" {
		want := anchorMetas[p.Anchor]
		for _, info := range pool {
			if info.Meta == want {
				// Identity matched, so a secondary constraint failed.
				return ErrInvalidRunesPresence
			}
		}
		return ErrAnchorMismatch
	}

	if p.RuneID != nil {
		for _, info := range pool {
			if _, ok := info.Runes.AmountOf(*p.RuneID); ok {
				if p.RuneAmount != nil {
					return ErrInvalidRuneAmount
				}
				// Rune present, so another constraint failed.
				return ErrInvalidUtxoValue
			}
		}
		return ErrInvalidRuneID
	}

	if p.Value != nil {
		for _, info := range pool {
			if info.Value == *p.Value {
				return ErrInvalidRunesPresence
			}
		}
		return ErrInvalidUtxoValue
	}

	if runesRequirement(p) != RunesAny {
		return ErrInvalidRunesPresence
	}
	return ErrMissingRequiredUtxo
}
