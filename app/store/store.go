package store

import (
	"context"

	"github.com/verso-cms/verso/pkg/sqlstore"
	"github.com/verso-cms/verso/pkg/types"
)

// ContentResourceStore 处理资源主表的读写
type ContentResourceStore interface {
	sqlstore.SqlCommons
	// Create 创建资源记录
	Create(ctx context.Context, data types.ContentResource) error
	// Get 根据ID获取资源记录，软删除的资源不可见
	Get(ctx context.Context, id string) (*types.ContentResource, error)
	// ListByType 获取指定类型的全部未删除资源
	ListByType(ctx context.Context, resourceType string) ([]types.ContentResource, error)
	// Exists 检查资源是否存在且未被软删除
	Exists(ctx context.Context, id string) (bool, error)
	// UpdateFields 整体覆盖 fields 并刷新 updated_at
	UpdateFields(ctx context.Context, id string, fields types.ResourceFields, updatedAt int64) error
	// SetCurrentVersion 将当前版本指针指向新版本并刷新 updated_at
	SetCurrentVersion(ctx context.Context, id, versionID string, updatedAt int64) error
	// UpdateState 设置工作流状态
	UpdateState(ctx context.Context, id string, state types.ResourceState, updatedAt int64) error
	// SoftDelete 标记删除时间，行本身保留
	SoftDelete(ctx context.Context, id string, deletedAt int64) error
}

// ContentVersionStore 处理版本表，版本只追加，从不更新或删除
type ContentVersionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ContentVersion) error
	Get(ctx context.Context, id string) (*types.ContentVersion, error)
	// ListByResource 按创建时间升序返回资源的全部版本
	ListByResource(ctx context.Context, resourceID string) ([]types.ContentVersion, error)
}

// TagStore 处理标签表，label 带唯一约束，按需创建
type TagStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Tag) error
	GetByLabel(ctx context.Context, label string) (*types.Tag, error)
	// ResolveLabels 查找或创建一组 label，返回对应的标签记录
	ResolveLabels(ctx context.Context, labels []string) ([]types.Tag, error)
}

// ContentResourceTagStore 处理资源与标签的多对多关联
type ContentResourceTagStore interface {
	sqlstore.SqlCommons
	BatchCreate(ctx context.Context, datas []types.ContentResourceTag) error
	// DeleteByResource 删除资源的全部关联，标签替换采用先删后插
	DeleteByResource(ctx context.Context, resourceID string) error
	// ListByResource 联表返回资源的标签（id + label）
	ListByResource(ctx context.Context, resourceID string) ([]types.Tag, error)
	// ListLabelsByResources 批量返回多个资源的标签，用于列表类反范式读取
	ListLabelsByResources(ctx context.Context, resourceIDs []string) (map[string][]types.Tag, error)
}
