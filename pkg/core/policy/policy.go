package policy

import (
	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	model "github.com/labsuite/chemmanager/pkg/model"
)

// Stateless authorization predicates over an explicit actor. Every denial is
// code.PermissionDenied so handlers surface it as a warning, never a fault.

// CanUpdateChemical permits the creating user only.
func CanUpdateChemical(actor *model.Actor, chem *model.Chemical) error {
	if actor == nil {
		return code.UnLogin
	}
	if chem.CreatorID != actor.UserID {
		return code.PermissionDenied
	}
	return nil
}

// CanDeleteChemical permits the creating user, and only while no stock
// references the chemical.
func CanDeleteChemical(actor *model.Actor, chem *model.Chemical, stockCount int64) error {
	if actor == nil {
		return code.UnLogin
	}
	if chem.CreatorID != actor.UserID {
		return code.PermissionDenied
	}
	if stockCount > 0 {
		return code.ChemicalInUseErr
	}
	return nil
}

// CanReadChemical hides secret chemicals, and everything hanging off them,
// from every workgroup but their own.
func CanReadChemical(actor *model.Actor, chem *model.Chemical) error {
	if actor == nil {
		return code.UnLogin
	}
	if chem.Secret && chem.WorkgroupID != actor.WorkgroupID {
		return code.PermissionDenied
	}
	return nil
}

// CanCreateStock requires the chemical to belong to the actor's workgroup.
func CanCreateStock(actor *model.Actor, chem *model.Chemical) error {
	if actor == nil {
		return code.UnLogin
	}
	if chem.WorkgroupID != actor.WorkgroupID {
		return code.PermissionDenied
	}
	return nil
}

// CanUpdateStock mirrors stock creation: same-workgroup chemical only.
func CanUpdateStock(actor *model.Actor, chem *model.Chemical) error {
	return CanCreateStock(actor, chem)
}

// CanDeleteStock requires the actor's workgroup among the storage's
// workgroups, i.e. the owner or any workgroup it is shared with.
func CanDeleteStock(actor *model.Actor, storageWorkgroupIDs []int64) error {
	if actor == nil {
		return code.UnLogin
	}
	if !contains(storageWorkgroupIDs, actor.WorkgroupID) {
		return code.PermissionDenied
	}
	return nil
}

// CanCreateExtraction permits withdrawal when the stock's storage is visible
// to the actor's workgroup or the chemical is owned by it. Secret chemicals
// are never extractable from outside their workgroup.
func CanCreateExtraction(actor *model.Actor, chem *model.Chemical, storageWorkgroupIDs []int64) error {
	if actor == nil {
		return code.UnLogin
	}
	if chem.WorkgroupID == actor.WorkgroupID {
		return nil
	}
	if chem.Secret {
		return code.PermissionDenied
	}
	if !contains(storageWorkgroupIDs, actor.WorkgroupID) {
		return code.PermissionDenied
	}
	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
