package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verso-cms/verso/pkg/register"
	"github.com/verso-cms/verso/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ContentVersionStore = NewContentVersionStore(provider)
	})
}

// ContentVersionStore 处理 verso_content_versions 表的操作。
// 版本只追加，表上没有 update/delete 路径。
type ContentVersionStore struct {
	CommonFields
}

// NewContentVersionStore 创建新的 ContentVersionStore 实例
func NewContentVersionStore(provider SqlProviderAchieve) *ContentVersionStore {
	repo := &ContentVersionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CONTENT_VERSION)
	repo.SetAllColumns("id", "resource_id", "content", "created_by_id", "created_at")
	return repo
}

// Create 追加一个内容快照
func (s *ContentVersionStore) Create(ctx context.Context, data types.ContentVersion) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "resource_id", "content", "created_by_id", "created_at").
		Values(data.ID, data.ResourceID, data.Content, data.CreatedByID, data.CreatedAt)

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

// Get 根据ID获取版本记录
func (s *ContentVersionStore) Get(ctx context.Context, id string) (*types.ContentVersion, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ContentVersion
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByResource 返回资源的全部历史版本，按创建时间升序，
// 同一秒内创建的版本按雪花ID升序兜底
func (s *ContentVersionStore) ListByResource(ctx context.Context, resourceID string) ([]types.ContentVersion, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"resource_id": resourceID}).OrderBy("created_at", "id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ContentVersion
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
