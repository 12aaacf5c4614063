package sqlstore

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verso-cms/verso/pkg/register"
	"github.com/verso-cms/verso/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ContentResourceStore = NewContentResourceStore(provider)
	})
}

// ContentResourceStore 处理 verso_content_resources 表的操作
type ContentResourceStore struct {
	CommonFields
}

// NewContentResourceStore 创建新的 ContentResourceStore 实例
func NewContentResourceStore(provider SqlProviderAchieve) *ContentResourceStore {
	repo := &ContentResourceStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CONTENT_RESOURCE)
	repo.SetAllColumns("id", "type", "created_by_id", "fields", "current_version_id", "state", "created_at", "updated_at", "deleted_at")
	return repo
}

// Create 创建资源记录，fields 为空时落 NULL，state 为空时落 draft
func (s *ContentResourceStore) Create(ctx context.Context, data types.ContentResource) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	if data.State == "" {
		data.State = types.RESOURCE_STATE_DRAFT
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "type", "created_by_id", "fields", "current_version_id", "state", "created_at", "updated_at", "deleted_at").
		Values(data.ID, data.Type, data.CreatedByID, data.Fields, data.CurrentVersionID, data.State, data.CreatedAt, data.UpdatedAt, data.DeletedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

// Get 根据ID获取资源记录，不会返回已软删除的行
func (s *ContentResourceStore) Get(ctx context.Context, id string) (*types.ContentResource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id, "deleted_at": 0})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ContentResource
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByType 获取指定类型的全部未删除资源
func (s *ContentResourceStore) ListByType(ctx context.Context, resourceType string) ([]types.ContentResource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"type": resourceType, "deleted_at": 0}).OrderBy("created_at")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ContentResource
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// Exists 检查资源是否存在且未被软删除
func (s *ContentResourceStore) Exists(ctx context.Context, id string) (bool, error) {
	query := sq.Select("id").From(s.GetTable()).Where(sq.Eq{"id": id, "deleted_at": 0})

	queryString, args, err := query.ToSql()
	if err != nil {
		return false, ErrorSqlBuild(err)
	}

	var got string
	if err = s.GetReplica(ctx).Get(&got, queryString, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateFields 整体覆盖 fields
func (s *ContentResourceStore) UpdateFields(ctx context.Context, id string, fields types.ResourceFields, updatedAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("fields", fields).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// SetCurrentVersion 重定向当前版本指针
func (s *ContentResourceStore) SetCurrentVersion(ctx context.Context, id, versionID string, updatedAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("current_version_id", versionID).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// UpdateState 设置工作流状态，核心层不校验状态迁移合法性
func (s *ContentResourceStore) UpdateState(ctx context.Context, id string, state types.ResourceState, updatedAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("state", state).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// SoftDelete 标记删除时间，重复设置无害
func (s *ContentResourceStore) SoftDelete(ctx context.Context, id string, deletedAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("deleted_at", deletedAt).
		Set("updated_at", deletedAt).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
