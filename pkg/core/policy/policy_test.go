package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	code "github.com/labsuite/chemmanager/pkg/common/code"
	model "github.com/labsuite/chemmanager/pkg/model"
)

func actor(user string, wg int64) *model.Actor {
	return &model.Actor{UserID: user, WorkgroupID: wg}
}

func chem(creator string, wg int64, secret bool) *model.Chemical {
	return &model.Chemical{CreatorID: creator, WorkgroupID: wg, Secret: secret}
}

func TestCanUpdateChemical(t *testing.T) {
	c := chem("alice", 1, false)

	assert.NoError(t, CanUpdateChemical(actor("alice", 1), c))
	assert.Equal(t, code.PermissionDenied, code.From(CanUpdateChemical(actor("bob", 1), c)))
	assert.Equal(t, code.UnLogin, code.From(CanUpdateChemical(nil, c)))
}

func TestCanDeleteChemical(t *testing.T) {
	c := chem("alice", 1, false)

	assert.NoError(t, CanDeleteChemical(actor("alice", 1), c, 0))
	assert.Equal(t, code.ChemicalInUseErr, code.From(CanDeleteChemical(actor("alice", 1), c, 3)))
	assert.Equal(t, code.PermissionDenied, code.From(CanDeleteChemical(actor("bob", 1), c, 0)))
}

func TestCanReadChemical(t *testing.T) {
	open := chem("alice", 1, false)
	secret := chem("alice", 1, true)

	assert.NoError(t, CanReadChemical(actor("bob", 2), open))
	assert.NoError(t, CanReadChemical(actor("bob", 1), secret))
	assert.Equal(t, code.PermissionDenied, code.From(CanReadChemical(actor("bob", 2), secret)))
	assert.Equal(t, code.UnLogin, code.From(CanReadChemical(nil, secret)))
}

func TestCanCreateStock(t *testing.T) {
	c := chem("alice", 1, false)

	assert.NoError(t, CanCreateStock(actor("bob", 1), c))
	assert.Equal(t, code.PermissionDenied, code.From(CanCreateStock(actor("bob", 2), c)))
}

func TestCanDeleteStock(t *testing.T) {
	assert.NoError(t, CanDeleteStock(actor("bob", 2), []int64{1, 2}))
	assert.Equal(t, code.PermissionDenied, code.From(CanDeleteStock(actor("bob", 3), []int64{1, 2})))
	assert.Equal(t, code.PermissionDenied, code.From(CanDeleteStock(actor("bob", 3), nil)))
}

func TestCanCreateExtraction(t *testing.T) {
	owned := chem("alice", 1, false)
	secret := chem("alice", 1, true)

	// Same workgroup always passes, even for secret chemicals.
	assert.NoError(t, CanCreateExtraction(actor("bob", 1), owned, nil))
	assert.NoError(t, CanCreateExtraction(actor("bob", 1), secret, nil))

	// Other workgroups need the storage shared with them.
	assert.NoError(t, CanCreateExtraction(actor("bob", 2), owned, []int64{1, 2}))
	assert.Equal(t, code.PermissionDenied,
		code.From(CanCreateExtraction(actor("bob", 2), owned, []int64{1})))

	// Secret chemicals stay inside their workgroup regardless of sharing.
	assert.Equal(t, code.PermissionDenied,
		code.From(CanCreateExtraction(actor("bob", 2), secret, []int64{1, 2})))
}
