package unitconv

import (
	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	model "github.com/labsuite/chemmanager/pkg/model"
)

// Convert rescales a quantity from one unit into another over their shared
// standard unit. Units with unrelated standards, or whose standard is itself
// derived, fail with code.ConversionUnsupported; callers must treat that as a
// validation error and never fall back to a zero result.
func Convert(quantity float64, from *model.Unit, to *model.Unit) (float64, error) {
	if from == nil || to == nil {
		return 0, code.UnitNotFound
	}
	if from == to || (from.ID != 0 && from.ID == to.ID) {
		return quantity, nil
	}

	fromStd, fromFactor, err := standardOf(from)
	if err != nil {
		return 0, err
	}
	toStd, toFactor, err := standardOf(to)
	if err != nil {
		return 0, err
	}

	if fromStd != toStd {
		return 0, code.ConversionUnsupported.
			WithMsgf("no conversion path from %q to %q", from.Name, to.Name)
	}

	return quantity / fromFactor * toFactor, nil
}

// standardOf resolves the canonical unit id and the factor linking u to it.
// A unit without a standard reference is its own standard with factor 1.
func standardOf(u *model.Unit) (int64, float64, error) {
	if u.EqualsStandardUnitID == nil {
		// An unsaved unit has no identity to anchor a conversion; without
		// this guard two distinct zero-ID units would look related.
		if u.ID == 0 {
			return 0, 0, code.ConversionUnsupported.
				WithMsgf("unit %q is not persisted", u.Name)
		}
		return u.ID, 1, nil
	}
	if u.EqualsStandard == nil || *u.EqualsStandard <= 0 {
		return 0, 0, code.ConversionUnsupported.
			WithMsgf("unit %q has no usable standard factor", u.Name)
	}
	// Single-hop contract: the referenced standard must itself be canonical.
	if u.EqualsStandardUnit != nil && u.EqualsStandardUnit.EqualsStandardUnitID != nil {
		return 0, 0, code.ConversionUnsupported.
			WithMsgf("unit %q chains through a non-standard unit", u.Name)
	}
	return *u.EqualsStandardUnitID, *u.EqualsStandard, nil
}
