package sqlstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verso-cms/verso/pkg/register"
	"github.com/verso-cms/verso/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ContentResourceTagStore = NewContentResourceTagStore(provider)
	})
}

// ContentResourceTagStore 处理 verso_content_resource_tags 关联表的操作
type ContentResourceTagStore struct {
	CommonFields
}

// NewContentResourceTagStore 创建新的 ContentResourceTagStore 实例
func NewContentResourceTagStore(provider SqlProviderAchieve) *ContentResourceTagStore {
	repo := &ContentResourceTagStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CONTENT_RESOURCE_TAG)
	repo.SetAllColumns("resource_id", "tag_id", "created_at")
	return repo
}

// BatchCreate 批量写入关联记录
func (s *ContentResourceTagStore) BatchCreate(ctx context.Context, datas []types.ContentResourceTag) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).Columns("resource_id", "tag_id", "created_at")
	now := time.Now().Unix()
	for _, data := range datas {
		if data.CreatedAt == 0 {
			data.CreatedAt = now
		}
		query = query.Values(data.ResourceID, data.TagID, data.CreatedAt)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// DeleteByResource 删除资源的全部标签关联。标签替换为整体先删后插，不做差量
func (s *ContentResourceTagStore) DeleteByResource(ctx context.Context, resourceID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"resource_id": resourceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// ListByResource 联表返回资源的标签，按关联创建顺序
func (s *ContentResourceTagStore) ListByResource(ctx context.Context, resourceID string) ([]types.Tag, error) {
	query := sq.Select("t.id", "t.label", "t.created_at").
		From(fmt.Sprintf("%s as rt", s.GetTable())).
		InnerJoin(fmt.Sprintf("%s as t ON t.id = rt.tag_id", types.TABLE_TAG.Name())).
		Where(sq.Eq{"rt.resource_id": resourceID}).
		OrderBy("rt.created_at", "t.id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Tag
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

type resourceTagRow struct {
	ResourceID string `db:"resource_id"`
	ID         string `db:"id"`
	Label      string `db:"label"`
	CreatedAt  int64  `db:"created_at"`
}

// ListLabelsByResources 批量获取多个资源的标签，供列表类反范式读取使用
func (s *ContentResourceTagStore) ListLabelsByResources(ctx context.Context, resourceIDs []string) (map[string][]types.Tag, error) {
	result := make(map[string][]types.Tag)
	if len(resourceIDs) == 0 {
		return result, nil
	}

	query := sq.Select("rt.resource_id", "t.id", "t.label", "t.created_at").
		From(fmt.Sprintf("%s as rt", s.GetTable())).
		InnerJoin(fmt.Sprintf("%s as t ON t.id = rt.tag_id", types.TABLE_TAG.Name())).
		Where(sq.Eq{"rt.resource_id": resourceIDs}).
		OrderBy("rt.created_at", "t.id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var rows []resourceTagRow
	if err = s.GetReplica(ctx).Select(&rows, queryString, args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ResourceID] = append(result[row.ResourceID], types.Tag{
			ID:        row.ID,
			Label:     row.Label,
			CreatedAt: row.CreatedAt,
		})
	}
	return result, nil
}
