package sqlstore

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verso-cms/verso/pkg/register"
	"github.com/verso-cms/verso/pkg/types"
	"github.com/verso-cms/verso/pkg/utils"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.TagStore = NewTagStore(provider)
	})
}

// TagStore 处理 verso_tags 表的操作，label 带唯一约束
type TagStore struct {
	CommonFields
}

// NewTagStore 创建新的 TagStore 实例
func NewTagStore(provider SqlProviderAchieve) *TagStore {
	repo := &TagStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_TAG)
	repo.SetAllColumns("id", "label", "created_at")
	return repo
}

// Create 创建标签，label 冲突时静默跳过，由调用方回读现有行
func (s *TagStore) Create(ctx context.Context, data types.Tag) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "label", "created_at").
		Values(data.ID, data.Label, data.CreatedAt).
		Suffix("ON CONFLICT (label) DO NOTHING")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// GetByLabel 根据 label 查找标签
func (s *TagStore) GetByLabel(ctx context.Context, label string) (*types.Tag, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"label": label})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Tag
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ResolveLabels 将一组 label 解析为标签记录，不存在的按需创建。
// 与并发写入同名标签相撞时依赖唯一约束收敛到同一行。
func (s *TagStore) ResolveLabels(ctx context.Context, labels []string) ([]types.Tag, error) {
	var result []types.Tag
	for _, label := range labels {
		tag, err := s.GetByLabel(ctx, label)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}

		if tag == nil {
			newTag := types.Tag{
				ID:        utils.GenUniqIDStr(),
				Label:     label,
				CreatedAt: time.Now().Unix(),
			}
			if err = s.Create(ctx, newTag); err != nil {
				return nil, err
			}
			// ON CONFLICT DO NOTHING 之后回读，拿到胜出的那一行
			if tag, err = s.GetByLabel(ctx, label); err != nil {
				return nil, err
			}
		}

		result = append(result, *tag)
	}
	return result, nil
}
