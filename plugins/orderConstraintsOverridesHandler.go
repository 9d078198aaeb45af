package plugins

import "github.com/stellar/cexdemo/model"

// OrderConstraintsOverridesHandler knows how to capture overrides and apply them onto OrderConstraints
type OrderConstraintsOverridesHandler struct {
	overrides map[model.TradingPair]*model.OrderConstraintsOverride
}

// MakeEmptyOrderConstraintsOverridesHandler is a factory method
func MakeEmptyOrderConstraintsOverridesHandler() *OrderConstraintsOverridesHandler {
	return &OrderConstraintsOverridesHandler{
		overrides: map[model.TradingPair]*model.OrderConstraintsOverride{},
	}
}

// Apply creates a new order constraints after checking for any existing overrides
func (ocHandler *OrderConstraintsOverridesHandler) Apply(pair *model.TradingPair, oc *model.OrderConstraints) *model.OrderConstraints {
	override, has := ocHandler.overrides[*pair]
	if !has {
		return oc
	}
	return oc.Apply(override)
}

// Get returns the override for the pair, nil if there is none
func (ocHandler *OrderConstraintsOverridesHandler) Get(pair *model.TradingPair) *model.OrderConstraintsOverride {
	return ocHandler.overrides[*pair]
}

// Upsert allows you to set overrides to partially override values for specific pairs
func (ocHandler *OrderConstraintsOverridesHandler) Upsert(pair *model.TradingPair, override *model.OrderConstraintsOverride) {
	existingOverride, exists := ocHandler.overrides[*pair]
	if !exists {
		copied := *override
		ocHandler.overrides[*pair] = &copied
		return
	}

	existingOverride.Augment(override)
}

// IsCompletelyOverriden returns true if the override exists and is complete for the given trading pair
func (ocHandler *OrderConstraintsOverridesHandler) IsCompletelyOverriden(pair *model.TradingPair) bool {
	override, has := ocHandler.overrides[*pair]
	if !has {
		return false
	}
	return override.IsComplete()
}

// constraintsFor looks up the pair in the matrix and applies overrides, returns nil if the pair is unknown and not completely overriden
func (ocHandler *OrderConstraintsOverridesHandler) constraintsFor(matrix map[model.TradingPair]model.OrderConstraints, pair *model.TradingPair) *model.OrderConstraints {
	if oc, ok := matrix[*pair]; ok {
		return ocHandler.Apply(pair, &oc)
	}

	if ocHandler.IsCompletelyOverriden(pair) {
		return model.MakeOrderConstraintsFromOverride(ocHandler.Get(pair))
	}
	return nil
}
