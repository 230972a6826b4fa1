package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/pkg/money"
)

// LineKey identifies one billing line: the item's natural key plus an
// optional variant name, both compared case-insensitively.
type LineKey struct {
	Item    string
	Variant string
}

// NewLineKey builds a normalized line key.
func NewLineKey(itemName, variantName string) LineKey {
	return LineKey{
		Item:    entity.NameKeyOf(itemName),
		Variant: entity.NameKeyOf(variantName),
	}
}

// LineSelection is one item's chosen quantity and effective rate within
// the in-progress bill. A selection exists if and only if its quantity
// is strictly positive.
type LineSelection struct {
	ItemName       string
	VariantName    string
	Quantity       float64
	RateCents      int64
	RateOverridden bool
}

// RateResolver resolves the current catalog rate for an item (and
// optional variant). The session consults it lazily on every quantity
// edit, so a catalog rate change is picked up on the next edit rather
// than being cached at session start.
type RateResolver interface {
	ResolveRate(ctx context.Context, itemName, variantName string) (int64, error)
}

// Session holds the working state of one bill in progress: selections
// keyed by line identity, plus rate overrides recorded before any
// quantity exists. Totals are derived, never stored. The session never
// mutates the catalog; overrides are strictly session-scoped.
//
// Session is not safe for concurrent use; BillingService serializes
// access.
type Session struct {
	selections map[LineKey]*LineSelection
	overrides  map[LineKey]int64 // rate edits waiting for a positive quantity
}

// NewSession creates an empty billing session.
func NewSession() *Session {
	return &Session{
		selections: make(map[LineKey]*LineSelection),
		overrides:  make(map[LineKey]int64),
	}
}

// ParseQuantity parses a raw quantity entry. Malformed or negative
// input degrades to zero rather than erroring: mid-entry keystrokes
// must never interrupt billing. The second return reports whether a
// non-empty entry was coerced to zero, so callers can surface an
// advisory warning.
func ParseQuantity(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
		return 0, true
	}
	return qty, false
}

// ParseRate parses a raw rate entry into paise. Unlike quantities,
// invalid rate input is ignored (ok=false) so the prior rate stays in
// effect; zero is a valid rate.
func ParseRate(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0, false
	}
	return money.ToCents(rate), true
}

// SelectQuantity creates, updates or removes the selection for the
// given line. A zero (or malformed) quantity removes it; a positive
// quantity resolves the effective rate with this precedence: explicit
// numeric rawRate, then an already-overridden selection rate, then a
// recorded pending override, then the current catalog rate.
//
// Returns whether a non-empty quantity entry was coerced to zero. The
// only error path is catalog resolution for a line the session has no
// rate for yet.
func (s *Session) SelectQuantity(ctx context.Context, resolver RateResolver, itemName, variantName, rawQty, rawRate string) (bool, error) {
	qty, coerced := ParseQuantity(rawQty)
	key := NewLineKey(itemName, variantName)

	if qty == 0 {
		// Keep an overridden rate around so re-entering a quantity
		// still uses the edited rate, matching the rate staying in the
		// input box on the counter screen.
		if sel, ok := s.selections[key]; ok && sel.RateOverridden {
			s.overrides[key] = sel.RateCents
		}
		delete(s.selections, key)
		return coerced, nil
	}

	rateCents, overridden, err := s.resolveEffectiveRate(ctx, resolver, key, itemName, variantName, rawRate)
	if err != nil {
		return coerced, err
	}

	s.selections[key] = &LineSelection{
		ItemName:       strings.TrimSpace(itemName),
		VariantName:    strings.TrimSpace(variantName),
		Quantity:       qty,
		RateCents:      rateCents,
		RateOverridden: overridden,
	}
	delete(s.overrides, key)
	return coerced, nil
}

func (s *Session) resolveEffectiveRate(ctx context.Context, resolver RateResolver, key LineKey, itemName, variantName, rawRate string) (int64, bool, error) {
	if cents, ok := ParseRate(rawRate); ok {
		return cents, true, nil
	}
	if sel, ok := s.selections[key]; ok && sel.RateOverridden {
		return sel.RateCents, true, nil
	}
	if cents, ok := s.overrides[key]; ok {
		return cents, true, nil
	}
	cents, err := resolver.ResolveRate(ctx, itemName, variantName)
	if err != nil {
		return 0, false, err
	}
	return cents, false, nil
}

// SetRateOverride updates the effective rate for a line. Invalid input
// is ignored, leaving the prior rate unchanged. With no positive
// quantity yet, the override is recorded and contributes nothing to
// totals until one arrives. The catalog is never touched.
//
// Returns true if the override was applied or recorded.
func (s *Session) SetRateOverride(itemName, variantName, rawRate string) bool {
	cents, ok := ParseRate(rawRate)
	if !ok {
		return false
	}

	key := NewLineKey(itemName, variantName)
	if sel, exists := s.selections[key]; exists {
		sel.RateCents = cents
		sel.RateOverridden = true
		return true
	}
	s.overrides[key] = cents
	return true
}

// PendingOverride reports a rate override recorded for a line with no
// quantity yet ("rate edited" display state).
func (s *Session) PendingOverride(itemName, variantName string) (int64, bool) {
	cents, ok := s.overrides[NewLineKey(itemName, variantName)]
	return cents, ok
}

// ClearAll removes every selection and pending override, returning the
// session to the empty state.
func (s *Session) ClearAll() {
	s.selections = make(map[LineKey]*LineSelection)
	s.overrides = make(map[LineKey]int64)
}

// Empty reports whether the session has no selections.
func (s *Session) Empty() bool {
	return len(s.selections) == 0
}

// Selections returns the current selections ordered by item name then
// variant name, so projections of the same state are deterministic.
func (s *Session) Selections() []LineSelection {
	out := make([]LineSelection, 0, len(s.selections))
	for _, sel := range s.selections {
		out = append(out, *sel)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := entity.NameKeyOf(out[i].ItemName), entity.NameKeyOf(out[j].ItemName)
		if a != b {
			return a < b
		}
		return entity.NameKeyOf(out[i].VariantName) < entity.NameKeyOf(out[j].VariantName)
	})
	return out
}

// Totals recomputes the bill totals from scratch on every call:
// subtotal over all selections, the signed round-off to the nearest
// whole rupee, and the resulting grand total. Pure function of the
// selections, so repeated calls without mutation agree exactly.
func (s *Session) Totals() (subtotal, roundOff, grandTotal int64) {
	for _, sel := range s.selections {
		subtotal += money.LineAmount(sel.Quantity, sel.RateCents)
	}
	roundOff = money.RoundOff(subtotal)
	grandTotal = subtotal + roundOff
	return subtotal, roundOff, grandTotal
}
