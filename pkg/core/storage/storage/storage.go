package storage

import (
	// 外部依赖
	"context"
	"sort"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	core "github.com/labsuite/chemmanager/pkg/core/storage"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoAccount "github.com/labsuite/chemmanager/pkg/repo/account"
	repoStorage "github.com/labsuite/chemmanager/pkg/repo/storage"
)

type storageImpl struct {
	storageStore repo.StorageRepo
	accountStore repo.Account
}

func New() core.Service {
	return &storageImpl{
		storageStore: repoStorage.NewStorageRepo(),
		accountStore: repoAccount.New(),
	}
}

func (s *storageImpl) AddRoot(ctx context.Context, actor *model.Actor, req *core.AddRootReq) (*core.StorageResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	data := &model.Storage{
		WorkgroupID:  actor.WorkgroupID,
		CreatorID:    actor.UserID,
		Name:         req.Name,
		Room:         req.Room,
		Abbreviation: req.Abbreviation,
	}
	if err := s.storageStore.CreateStorage(ctx, data); err != nil {
		logger.Errorf(ctx, "AddRoot create err: %+v", err)
		return nil, code.StorageCreateErr.WithErr(err)
	}

	return &core.StorageResp{UUID: data.UUID}, nil
}

func (s *storageImpl) AddChild(ctx context.Context, actor *model.Actor, req *core.AddChildReq) (*core.StorageResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	parentID := s.storageStore.UUID2ID(ctx, &model.Storage{}, req.ParentUUID)[req.ParentUUID]
	if parentID == 0 {
		return nil, code.StorageNotFound
	}
	parent, err := s.storageStore.GetStorageByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	// A child always lives in its parent's workgroup.
	if parent.WorkgroupID != actor.WorkgroupID {
		return nil, code.PermissionDenied
	}

	data := &model.Storage{
		WorkgroupID:  parent.WorkgroupID,
		CreatorID:    actor.UserID,
		ParentID:     &parent.ID,
		Name:         req.Name,
		Room:         req.Room,
		Abbreviation: req.Abbreviation,
	}
	if err := s.storageStore.CreateStorage(ctx, data); err != nil {
		logger.Errorf(ctx, "AddChild create err: %+v", err)
		return nil, code.StorageCreateErr.WithErr(err)
	}

	return &core.StorageResp{UUID: data.UUID}, nil
}

func (s *storageImpl) List(ctx context.Context, actor *model.Actor) ([]*core.StorageNode, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	nodes, err := s.storageStore.ListByWorkgroup(ctx, actor.WorkgroupID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Storage, len(nodes))
	children := make(map[int64][]*model.Storage)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	roots := make([]*model.Storage, 0)
	for _, n := range nodes {
		if n.ParentID != nil {
			if _, ok := byID[*n.ParentID]; ok {
				children[*n.ParentID] = append(children[*n.ParentID], n)
				continue
			}
		}
		// Orphans of invisible parents surface as subtree roots.
		roots = append(roots, n)
	}

	byName := func(list []*model.Storage) {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	byName(roots)
	for _, list := range children {
		byName(list)
	}

	out := make([]*core.StorageNode, 0, len(nodes))
	var walk func(n *model.Storage) error
	walk = func(n *model.Storage) error {
		node, err := s.buildNode(ctx, n, byID)
		if err != nil {
			return err
		}
		out = append(out, node)
		for _, c := range children[n.ID] {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *storageImpl) buildNode(ctx context.Context, n *model.Storage, byID map[int64]*model.Storage) (*core.StorageNode, error) {
	chain, err := s.chainOf(ctx, n, byID)
	if err != nil {
		return nil, err
	}

	sharedIDs, err := s.storageStore.SharedWorkgroupIDs(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	shared := len(sharedIDs) > 0

	depth := len(chain) + 1
	return &core.StorageNode{
		UUID:             n.UUID,
		Name:             n.Name,
		Room:             n.Room,
		Abbreviation:     n.Abbreviation,
		Depth:            depth,
		Shared:           shared,
		LocationName:     core.LocationName(chain, n),
		FullAbbreviation: core.FullAbbreviation(chain, n),
		DisplayName:      core.DisplayName(n, depth, shared),
	}, nil
}

// chainOf resolves ancestors root-first, preferring the already-listed nodes
// and falling back to the store for parents outside the visible set.
func (s *storageImpl) chainOf(ctx context.Context, n *model.Storage, byID map[int64]*model.Storage) ([]*model.Storage, error) {
	chain := make([]*model.Storage, 0, 4)
	cur := n
	for cur.ParentID != nil {
		parent, ok := byID[*cur.ParentID]
		if !ok {
			var err error
			parent, err = s.storageStore.GetStorageByID(ctx, *cur.ParentID)
			if err != nil {
				return nil, err
			}
			byID[parent.ID] = parent
		}
		chain = append([]*model.Storage{parent}, chain...)
		cur = parent
	}
	return chain, nil
}

func (s *storageImpl) Delete(ctx context.Context, actor *model.Actor, req *core.DeleteReq) error {
	if actor == nil {
		return code.UnLogin
	}

	id := s.storageStore.UUID2ID(ctx, &model.Storage{}, req.UUID)[req.UUID]
	if id == 0 {
		return code.StorageNotFound
	}
	node, err := s.storageStore.GetStorageByID(ctx, id)
	if err != nil {
		return err
	}

	if node.CreatorID != actor.UserID {
		return code.PermissionDenied
	}

	count, err := s.storageStore.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return code.StorageHasChildrenErr
	}

	return s.storageStore.DeleteStorage(ctx, id)
}

func (s *storageImpl) Share(ctx context.Context, actor *model.Actor, req *core.ShareReq) error {
	if actor == nil {
		return code.UnLogin
	}

	id := s.storageStore.UUID2ID(ctx, &model.Storage{}, req.UUID)[req.UUID]
	if id == 0 {
		return code.StorageNotFound
	}
	node, err := s.storageStore.GetStorageByID(ctx, id)
	if err != nil {
		return err
	}

	if node.WorkgroupID != actor.WorkgroupID {
		return code.PermissionDenied
	}

	wg, err := s.accountStore.FindOrCreateWorkgroup(ctx, req.WorkgroupName)
	if err != nil {
		return err
	}
	if wg.ID == node.WorkgroupID {
		// Sharing with the owning workgroup is a no-op.
		return nil
	}

	return s.storageStore.ShareWithWorkgroup(ctx, id, wg.ID)
}

func (s *storageImpl) SearchSharedWorkgroups(ctx context.Context, actor *model.Actor, prefix string) ([]string, error) {
	if actor == nil {
		return nil, code.UnLogin
	}
	return s.storageStore.SearchSharedWorkgroupNames(ctx, actor.WorkgroupID, prefix, 10)
}
