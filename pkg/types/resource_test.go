package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFromString(t *testing.T) {
	assert.Equal(t, RESOURCE_STATE_DRAFT, StateFromString("draft"))
	assert.Equal(t, RESOURCE_STATE_IN_REVIEW, StateFromString("in_review"))
	assert.Equal(t, RESOURCE_STATE_APPROVED, StateFromString("Approved"))
	assert.Equal(t, RESOURCE_STATE_PUBLISHED, StateFromString("published"))
	assert.Equal(t, RESOURCE_STATE_ARCHIVED, StateFromString("archived"))
	assert.Equal(t, RESOURCE_STATE_UNKNOWN, StateFromString("reviewing"))
	assert.Equal(t, RESOURCE_STATE_UNKNOWN, StateFromString(""))
}

func TestResourceContentScan(t *testing.T) {
	var c ResourceContent
	require.NoError(t, c.Scan([]byte(`{"title":"T"}`)))
	assert.JSONEq(t, `{"title":"T"}`, string(c))

	var fromString ResourceContent
	require.NoError(t, fromString.Scan(`{"a":1}`))
	assert.JSONEq(t, `{"a":1}`, string(fromString))

	var fromNil ResourceContent
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}

func TestResourceContentMarshal(t *testing.T) {
	detail := ContentResourceDetail{
		ContentResource: ContentResource{
			ID:     "1",
			Type:   "article",
			Fields: nil,
		},
		CurrentVersion: &ContentVersion{
			ID:      "2",
			Content: ResourceContent(`{"title":"T"}`),
		},
		Tags: []Tag{},
	}

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded["fields"])
	assert.Equal(t, []interface{}{}, decoded["tags"])

	version := decoded["current_version"].(map[string]interface{})
	content := version["content"].(map[string]interface{})
	assert.Equal(t, "T", content["title"])
}

func TestUpdateArgsIsEmpty(t *testing.T) {
	assert.True(t, UpdateResourceArgs{}.IsEmpty())
	assert.False(t, UpdateResourceArgs{Fields: ResourceFields(`{}`)}.IsEmpty())
	assert.False(t, UpdateResourceArgs{Content: ResourceContent(`{"a":1}`)}.IsEmpty())
	assert.False(t, UpdateResourceArgs{Tags: []string{}}.IsEmpty())
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "verso_content_resources", TABLE_CONTENT_RESOURCE.Name())
	assert.Equal(t, "verso_content_versions", TABLE_CONTENT_VERSION.Name())
	assert.Equal(t, "verso_tags", TABLE_TAG.Name())
	assert.Equal(t, "verso_content_resource_tags", TABLE_CONTENT_RESOURCE_TAG.Name())
}
