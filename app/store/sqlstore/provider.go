package sqlstore

import (
	"embed"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/verso-cms/verso/app/store"
	"github.com/verso-cms/verso/pkg/register"
	"github.com/verso-cms/verso/pkg/sqlstore"
	"github.com/verso-cms/verso/pkg/types"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

var (
	//go:embed *.sql
	CreateTableFiles embed.FS
)

var provider = &Provider{
	stores: &Stores{},
}

func GetProvider() *Provider {
	return provider
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.ContentResourceStore
	store.ContentVersionStore
	store.TagStore
	store.ContentResourceTagStore
}

type RegisterKey struct{}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {

	provider.SqlProvider = sqlstore.MustSetupProvider(m, s...)

	for _, f := range register.ResolveFuncHandlers[*Provider](RegisterKey{}) {
		f(provider)
	}

	return func() *Provider {
		return provider
	}
}

// Install 应用全部建表迁移，可重复执行
func (p *Provider) Install() error {
	// 确保迁移记录表存在
	if err := p.ensureMigrationTable(); err != nil {
		return err
	}

	// 获取所有SQL文件
	files, err := CreateTableFiles.ReadDir(".")
	if err != nil {
		return err
	}

	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			// 跳过已执行的文件
			if executed, err := p.isFileExecuted(file.Name()); err != nil {
				return err
			} else if executed {
				continue
			}

			sql, err := CreateTableFiles.ReadFile(file.Name())
			if err != nil {
				return err
			}

			if err = p.executeSQLFile(string(sql), file.Name()); err != nil {
				return err
			}

			if err = p.markFileExecuted(file.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureMigrationTable 确保迁移记录表存在
func (p *Provider) ensureMigrationTable() error {
	createTableSQL := `
CREATE TABLE IF NOT EXISTS ` + types.TABLE_PREFIX + `schema_migrations (
    filename VARCHAR(255) PRIMARY KEY,
    executed_at BIGINT NOT NULL
);`
	_, err := p.SqlProvider.GetMaster().Exec(createTableSQL)
	return err
}

// isFileExecuted 检查文件是否已经执行过
func (p *Provider) isFileExecuted(filename string) (bool, error) {
	var count int
	err := p.SqlProvider.GetReplica().Get(&count,
		"SELECT COUNT(*) FROM "+types.TABLE_PREFIX+"schema_migrations WHERE filename = $1", filename)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// markFileExecuted 标记文件为已执行
func (p *Provider) markFileExecuted(filename string) error {
	_, err := p.SqlProvider.GetMaster().Exec(
		"INSERT INTO "+types.TABLE_PREFIX+"schema_migrations (filename, executed_at) VALUES ($1, $2) ON CONFLICT (filename) DO NOTHING",
		filename, time.Now().Unix())
	return err
}

// executeSQLFile 执行单个迁移文件
func (p *Provider) executeSQLFile(content, filename string) error {
	if _, err := p.SqlProvider.GetMaster().Exec(content); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", filename, err)
	}
	return nil
}

func (p *Provider) ContentResourceStore() store.ContentResourceStore {
	return p.stores.ContentResourceStore
}

func (p *Provider) ContentVersionStore() store.ContentVersionStore {
	return p.stores.ContentVersionStore
}

func (p *Provider) TagStore() store.TagStore {
	return p.stores.TagStore
}

func (p *Provider) ContentResourceTagStore() store.ContentResourceTagStore {
	return p.stores.ContentResourceTagStore
}
