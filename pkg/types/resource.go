package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResourceState 资源工作流状态
type ResourceState string

const (
	RESOURCE_STATE_DRAFT     ResourceState = "draft"
	RESOURCE_STATE_IN_REVIEW ResourceState = "in_review"
	RESOURCE_STATE_APPROVED  ResourceState = "approved"
	RESOURCE_STATE_PUBLISHED ResourceState = "published"
	RESOURCE_STATE_ARCHIVED  ResourceState = "archived"
	RESOURCE_STATE_UNKNOWN   ResourceState = "unknown"
)

func StateFromString(s string) ResourceState {
	switch strings.ToLower(s) {
	case string(RESOURCE_STATE_DRAFT):
		return RESOURCE_STATE_DRAFT
	case string(RESOURCE_STATE_IN_REVIEW):
		return RESOURCE_STATE_IN_REVIEW
	case string(RESOURCE_STATE_APPROVED):
		return RESOURCE_STATE_APPROVED
	case string(RESOURCE_STATE_PUBLISHED):
		return RESOURCE_STATE_PUBLISHED
	case string(RESOURCE_STATE_ARCHIVED):
		return RESOURCE_STATE_ARCHIVED
	default:
		return RESOURCE_STATE_UNKNOWN
	}
}

func (s ResourceState) String() string {
	return string(s)
}

// ResourceContent 版本内容，数据库中以 JSONB 存储
type ResourceContent json.RawMessage

func (m ResourceContent) String() string {
	var str string
	if err := json.Unmarshal(m, &str); err == nil {
		return str
	}
	return string(m)
}

func (m ResourceContent) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m, nil
}

func (m *ResourceContent) UnmarshalJSON(data []byte) error {
	*m = data
	return nil
}

// Scan implements the sql.Scanner interface.
func (m *ResourceContent) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return m.scanBytes(src)
	case string:
		return m.scanBytes([]byte(src))
	case nil:
		return nil
	}

	return fmt.Errorf("pq: cannot convert %T to json.RawMessage", src)
}

func (m *ResourceContent) scanBytes(src []byte) error {
	*m = ResourceContent(src)
	return nil
}

// ResourceFields 资源的非版本化元数据，整体覆盖式更新
type ResourceFields = ResourceContent

// ContentResource 顶层可寻址实体，内容修改只追加版本，不原地变更
type ContentResource struct {
	ID               string         `json:"id" db:"id"`
	Type             string         `json:"type" db:"type"`
	CreatedByID      string         `json:"created_by_id" db:"created_by_id"`
	Fields           ResourceFields `json:"fields" db:"fields"`
	CurrentVersionID *string        `json:"current_version_id" db:"current_version_id"`
	State            ResourceState  `json:"state" db:"state"`
	CreatedAt        int64          `json:"created_at" db:"created_at"`
	UpdatedAt        int64          `json:"updated_at" db:"updated_at"`
	DeletedAt        int64          `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ContentVersion 不可变内容快照，只增不改
type ContentVersion struct {
	ID          string          `json:"id" db:"id"`
	ResourceID  string          `json:"resource_id" db:"resource_id"`
	Content     ResourceContent `json:"content" db:"content"`
	CreatedByID string          `json:"created_by_id" db:"created_by_id"`
	CreatedAt   int64           `json:"created_at" db:"created_at"`
}

type Tag struct {
	ID        string `json:"id" db:"id"`
	Label     string `json:"label" db:"label"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type ContentResourceTag struct {
	ResourceID string `json:"resource_id" db:"resource_id"`
	TagID      string `json:"tag_id" db:"tag_id"`
	CreatedAt  int64  `json:"created_at" db:"created_at"`
}

// ContentResourceDetail 反范式读取结果，内嵌当前版本与标签
type ContentResourceDetail struct {
	ContentResource
	CurrentVersion *ContentVersion `json:"current_version,omitempty"`
	Tags           []Tag           `json:"tags"`
}

type CreateResourceArgs struct {
	Type        string
	CreatedByID string
	Content     ResourceContent
	Fields      ResourceFields
	Tags        []string
}

// UpdateResourceArgs 每个字段均可选，nil 表示本次更新不涉及
type UpdateResourceArgs struct {
	Fields  ResourceFields
	Content ResourceContent
	Tags    []string
}

// IsEmpty 空更新请求在进入存储层之前即被拒绝
func (a UpdateResourceArgs) IsEmpty() bool {
	return a.Fields == nil && a.Content == nil && a.Tags == nil
}
