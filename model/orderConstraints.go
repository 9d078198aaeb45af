package model

import (
	"fmt"
)

// OrderConstraints describes constraints when placing orders on an exchange
type OrderConstraints struct {
	PricePrecision  int8
	VolumePrecision int8
	MinBaseVolume   Number
}

// MakeOrderConstraints is a factory method for OrderConstraints
func MakeOrderConstraints(pricePrecision int8, volumePrecision int8, minBaseVolume float64) *OrderConstraints {
	return &OrderConstraints{
		PricePrecision:  pricePrecision,
		VolumePrecision: volumePrecision,
		MinBaseVolume:   *NumberFromFloat(minBaseVolume, volumePrecision),
	}
}

// String is the stringer function
func (o *OrderConstraints) String() string {
	return fmt.Sprintf("OrderConstraints[PricePrecision: %d, VolumePrecision: %d, MinBaseVolume: %s]",
		o.PricePrecision, o.VolumePrecision, o.MinBaseVolume.AsString())
}

// OrderConstraintsOverride describes an override for an OrderConstraint, nil fields keep the original value
type OrderConstraintsOverride struct {
	PricePrecision  *int8
	VolumePrecision *int8
	MinBaseVolume   *Number
}

// IsComplete returns true if the override contains all values
func (override *OrderConstraintsOverride) IsComplete() bool {
	return override.PricePrecision != nil && override.VolumePrecision != nil && override.MinBaseVolume != nil
}

// Apply returns a copy of the constraints with the non-nil override fields applied
func (o OrderConstraints) Apply(override *OrderConstraintsOverride) *OrderConstraints {
	if override == nil {
		return &o
	}
	if override.PricePrecision != nil {
		o.PricePrecision = *override.PricePrecision
	}
	if override.VolumePrecision != nil {
		o.VolumePrecision = *override.VolumePrecision
	}
	if override.MinBaseVolume != nil {
		o.MinBaseVolume = *override.MinBaseVolume
	}
	return &o
}

// MakeOrderConstraintsFromOverride is a factory method to convert an OrderConstraintsOverride to an OrderConstraints
func MakeOrderConstraintsFromOverride(override *OrderConstraintsOverride) *OrderConstraints {
	if !override.IsComplete() {
		panic(fmt.Sprintf("input override was incomplete, cannot convert to OrderConstraints: %v", override))
	}
	return &OrderConstraints{
		PricePrecision:  *override.PricePrecision,
		VolumePrecision: *override.VolumePrecision,
		MinBaseVolume:   *override.MinBaseVolume,
	}
}

// Augment only updates values if updates are non-nil
func (override *OrderConstraintsOverride) Augment(updates *OrderConstraintsOverride) {
	if updates.PricePrecision != nil {
		override.PricePrecision = updates.PricePrecision
	}
	if updates.VolumePrecision != nil {
		override.VolumePrecision = updates.VolumePrecision
	}
	if updates.MinBaseVolume != nil {
		override.MinBaseVolume = updates.MinBaseVolume
	}
}

// String is the stringer function
func (override *OrderConstraintsOverride) String() string {
	pp, vp := "<nil>", "<nil>"
	if override.PricePrecision != nil {
		pp = fmt.Sprintf("%d", *override.PricePrecision)
	}
	if override.VolumePrecision != nil {
		vp = fmt.Sprintf("%d", *override.VolumePrecision)
	}
	mbv := "<nil>"
	if override.MinBaseVolume != nil {
		mbv = override.MinBaseVolume.AsString()
	}
	return fmt.Sprintf("OrderConstraintsOverride[PricePrecision: %s, VolumePrecision: %s, MinBaseVolume: %s]", pp, vp, mbv)
}
