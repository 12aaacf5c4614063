package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/verso-cms/verso/app/core"
	"github.com/verso-cms/verso/pkg/errors"
	"github.com/verso-cms/verso/pkg/i18n"
	"github.com/verso-cms/verso/pkg/types"
	"github.com/verso-cms/verso/pkg/utils"
)

// ResourceLogic 资源逻辑层，唯一的对外入口。
// 负责入参校验、存在性检查与错误翻译，多表写入统一走存储层事务。
type ResourceLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewResourceLogic(ctx context.Context, core *core.Core) *ResourceLogic {
	l := &ResourceLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

// CreateResource 创建资源及其首个版本。
// 资源行、版本行、当前版本指针、标签关联在同一事务内落库，任何一步失败全部回滚。
func (l *ResourceLogic) CreateResource(args types.CreateResourceArgs) (*types.ContentResourceDetail, error) {
	if args.Type == "" {
		return nil, errors.New("ResourceLogic.CreateResource.Type", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.CreatedByID == "" {
		return nil, errors.New("ResourceLogic.CreateResource.CreatedByID", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if len(args.Content) == 0 {
		return nil, errors.New("ResourceLogic.CreateResource.Content", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	resourceID := utils.GenUniqIDStr()
	now := time.Now().Unix()

	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ContentResourceStore().Create(ctx, types.ContentResource{
			ID:          resourceID,
			Type:        args.Type,
			CreatedByID: args.CreatedByID,
			Fields:      args.Fields,
			State:       types.RESOURCE_STATE_DRAFT,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return errors.New("ResourceLogic.CreateResource.ContentResourceStore.Create", i18n.ERROR_INTERNAL, err)
		}

		versionID := utils.GenUniqIDStr()
		if err := l.core.Store().ContentVersionStore().Create(ctx, types.ContentVersion{
			ID:          versionID,
			ResourceID:  resourceID,
			Content:     args.Content,
			CreatedByID: args.CreatedByID,
			CreatedAt:   now,
		}); err != nil {
			return errors.New("ResourceLogic.CreateResource.ContentVersionStore.Create", i18n.ERROR_INTERNAL, err)
		}

		if err := l.core.Store().ContentResourceStore().SetCurrentVersion(ctx, resourceID, versionID, now); err != nil {
			return errors.New("ResourceLogic.CreateResource.ContentResourceStore.SetCurrentVersion", i18n.ERROR_INTERNAL, err)
		}

		if len(args.Tags) > 0 {
			if err := l.linkTags(ctx, resourceID, args.Tags, now); err != nil {
				return errors.Trace("ResourceLogic.CreateResource", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace("ResourceLogic.CreateResource.Transaction", err)
	}

	return l.GetResource(resourceID)
}

// linkTags 解析 label 集合并写入关联行，必须在事务内调用
func (l *ResourceLogic) linkTags(ctx context.Context, resourceID string, labels []string, now int64) error {
	tags, err := l.core.Store().TagStore().ResolveLabels(ctx, labels)
	if err != nil {
		return errors.New("ResourceLogic.linkTags.TagStore.ResolveLabels", i18n.ERROR_INTERNAL, err)
	}

	links := lo.Map(tags, func(tag types.Tag, _ int) types.ContentResourceTag {
		return types.ContentResourceTag{
			ResourceID: resourceID,
			TagID:      tag.ID,
			CreatedAt:  now,
		}
	})
	if err = l.core.Store().ContentResourceTagStore().BatchCreate(ctx, links); err != nil {
		return errors.New("ResourceLogic.linkTags.ContentResourceTagStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// GetResource 返回反范式视图：资源 + 当前版本 + 标签
func (l *ResourceLogic) GetResource(id string) (*types.ContentResourceDetail, error) {
	resource, err := l.core.Store().ContentResourceStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("ResourceLogic.GetResource.notfound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
		}
		return nil, errors.New("ResourceLogic.GetResource.ContentResourceStore.Get", i18n.ERROR_INTERNAL, err)
	}

	detail := &types.ContentResourceDetail{
		ContentResource: *resource,
		Tags:            []types.Tag{},
	}

	if resource.CurrentVersionID != nil {
		version, err := l.core.Store().ContentVersionStore().Get(l.ctx, *resource.CurrentVersionID)
		if err != nil {
			return nil, errors.New("ResourceLogic.GetResource.ContentVersionStore.Get", i18n.ERROR_INTERNAL, err)
		}
		detail.CurrentVersion = version
	}

	tags, err := l.core.Store().ContentResourceTagStore().ListByResource(l.ctx, id)
	if err != nil {
		return nil, errors.New("ResourceLogic.GetResource.ContentResourceTagStore.ListByResource", i18n.ERROR_INTERNAL, err)
	}
	if tags != nil {
		detail.Tags = tags
	}

	return detail, nil
}

// ListResourcesByType 返回指定类型的全部未删除资源，同样走反范式组装
func (l *ResourceLogic) ListResourcesByType(resourceType string) ([]types.ContentResourceDetail, error) {
	if resourceType == "" {
		return nil, errors.New("ResourceLogic.ListResourcesByType.Type", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	resources, err := l.core.Store().ContentResourceStore().ListByType(l.ctx, resourceType)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ResourceLogic.ListResourcesByType.ContentResourceStore.ListByType", i18n.ERROR_INTERNAL, err)
	}

	if len(resources) == 0 {
		return []types.ContentResourceDetail{}, nil
	}

	tagsByResource, err := l.core.Store().ContentResourceTagStore().ListLabelsByResources(l.ctx, lo.Map(resources, func(item types.ContentResource, _ int) string {
		return item.ID
	}))
	if err != nil {
		return nil, errors.New("ResourceLogic.ListResourcesByType.ContentResourceTagStore.ListLabelsByResources", i18n.ERROR_INTERNAL, err)
	}

	result := make([]types.ContentResourceDetail, 0, len(resources))
	for _, resource := range resources {
		detail := types.ContentResourceDetail{
			ContentResource: resource,
			Tags:            []types.Tag{},
		}
		if resource.CurrentVersionID != nil {
			version, err := l.core.Store().ContentVersionStore().Get(l.ctx, *resource.CurrentVersionID)
			if err != nil {
				return nil, errors.New("ResourceLogic.ListResourcesByType.ContentVersionStore.Get", i18n.ERROR_INTERNAL, err)
			}
			detail.CurrentVersion = version
		}
		if tags := tagsByResource[resource.ID]; tags != nil {
			detail.Tags = tags
		}
		result = append(result, detail)
	}

	return result, nil
}

// UpdateResource 按需执行三类变更：覆盖 fields、追加新版本并重定向指针、整体替换标签。
// 空更新在进入存储层之前即被拒绝；存在性在事务内重新确认，不信任调用方的旧读取。
func (l *ResourceLogic) UpdateResource(id string, args types.UpdateResourceArgs, updatedByID string) (*types.ContentResourceDetail, error) {
	if id == "" || updatedByID == "" {
		return nil, errors.New("ResourceLogic.UpdateResource.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.IsEmpty() {
		return nil, errors.New("ResourceLogic.UpdateResource.empty", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	err := l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		exist, err := l.core.Store().ContentResourceStore().Exists(ctx, id)
		if err != nil {
			return errors.New("ResourceLogic.UpdateResource.ContentResourceStore.Exists", i18n.ERROR_INTERNAL, err)
		}
		if !exist {
			return errors.New("ResourceLogic.UpdateResource.notfound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
		}

		now := time.Now().Unix()

		if args.Fields != nil {
			if err = l.core.Store().ContentResourceStore().UpdateFields(ctx, id, args.Fields, now); err != nil {
				return errors.New("ResourceLogic.UpdateResource.ContentResourceStore.UpdateFields", i18n.ERROR_INTERNAL, err)
			}
		}

		if args.Content != nil {
			versionID := utils.GenUniqIDStr()
			if err = l.core.Store().ContentVersionStore().Create(ctx, types.ContentVersion{
				ID:          versionID,
				ResourceID:  id,
				Content:     args.Content,
				CreatedByID: updatedByID,
				CreatedAt:   now,
			}); err != nil {
				return errors.New("ResourceLogic.UpdateResource.ContentVersionStore.Create", i18n.ERROR_INTERNAL, err)
			}

			if err = l.core.Store().ContentResourceStore().SetCurrentVersion(ctx, id, versionID, now); err != nil {
				return errors.New("ResourceLogic.UpdateResource.ContentResourceStore.SetCurrentVersion", i18n.ERROR_INTERNAL, err)
			}
		}

		if args.Tags != nil {
			if err = l.core.Store().ContentResourceTagStore().DeleteByResource(ctx, id); err != nil {
				return errors.New("ResourceLogic.UpdateResource.ContentResourceTagStore.DeleteByResource", i18n.ERROR_INTERNAL, err)
			}
			if len(args.Tags) > 0 {
				if err = l.linkTags(ctx, id, args.Tags, now); err != nil {
					return errors.Trace("ResourceLogic.UpdateResource", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace("ResourceLogic.UpdateResource.Transaction", err)
	}

	return l.GetResource(id)
}

// UpdateState 设置工作流状态，核心层不做状态机校验
func (l *ResourceLogic) UpdateState(id string, state string) error {
	parsed := types.StateFromString(state)
	if parsed == types.RESOURCE_STATE_UNKNOWN {
		return errors.New("ResourceLogic.UpdateState.state", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	exist, err := l.core.Store().ContentResourceStore().Exists(l.ctx, id)
	if err != nil {
		return errors.New("ResourceLogic.UpdateState.ContentResourceStore.Exists", i18n.ERROR_INTERNAL, err)
	}
	if !exist {
		return errors.New("ResourceLogic.UpdateState.notfound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err = l.core.Store().ContentResourceStore().UpdateState(l.ctx, id, parsed, time.Now().Unix()); err != nil {
		return errors.New("ResourceLogic.UpdateState.ContentResourceStore.UpdateState", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// DeleteResource 软删除，行保留，标准读取路径不再可见
func (l *ResourceLogic) DeleteResource(id string) error {
	exist, err := l.core.Store().ContentResourceStore().Exists(l.ctx, id)
	if err != nil {
		return errors.New("ResourceLogic.DeleteResource.ContentResourceStore.Exists", i18n.ERROR_INTERNAL, err)
	}
	if !exist {
		return errors.New("ResourceLogic.DeleteResource.notfound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err = l.core.Store().ContentResourceStore().SoftDelete(l.ctx, id, time.Now().Unix()); err != nil {
		return errors.New("ResourceLogic.DeleteResource.ContentResourceStore.SoftDelete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// GetVersionHistory 返回资源的全部版本，按创建时间升序
func (l *ResourceLogic) GetVersionHistory(id string) ([]types.ContentVersion, error) {
	exist, err := l.core.Store().ContentResourceStore().Exists(l.ctx, id)
	if err != nil {
		return nil, errors.New("ResourceLogic.GetVersionHistory.ContentResourceStore.Exists", i18n.ERROR_INTERNAL, err)
	}
	if !exist {
		return nil, errors.New("ResourceLogic.GetVersionHistory.notfound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	versions, err := l.core.Store().ContentVersionStore().ListByResource(l.ctx, id)
	if err != nil {
		return nil, errors.New("ResourceLogic.GetVersionHistory.ContentVersionStore.ListByResource", i18n.ERROR_INTERNAL, err)
	}
	return versions, nil
}
