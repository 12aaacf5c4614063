package v1_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/verso-cms/verso/app/logic/v1"
	"github.com/verso-cms/verso/pkg/errors"
	"github.com/verso-cms/verso/pkg/types"
)

func setupResourceLogic(t *testing.T) *v1.ResourceLogic {
	return v1.NewResourceLogic(ctx, NewCore())
}

func TestCreateResourceRejectsMissingType(t *testing.T) {
	logic := setupResourceLogic(t)

	_, err := logic.CreateResource(types.CreateResourceArgs{
		CreatedByID: "u1",
		Content:     types.ResourceContent(`{"title":"T"}`),
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCreateResourceRejectsMissingCreator(t *testing.T) {
	logic := setupResourceLogic(t)

	_, err := logic.CreateResource(types.CreateResourceArgs{
		Type:    "article",
		Content: types.ResourceContent(`{"title":"T"}`),
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCreateResourceRejectsMissingContent(t *testing.T) {
	logic := setupResourceLogic(t)

	_, err := logic.CreateResource(types.CreateResourceArgs{
		Type:        "article",
		CreatedByID: "u1",
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

// 空更新请求必须在任何存储访问之前被拒绝
func TestUpdateResourceRejectsEmptyPayload(t *testing.T) {
	logic := setupResourceLogic(t)

	_, err := logic.UpdateResource("1", types.UpdateResourceArgs{}, "u1")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestUpdateResourceRejectsMissingOperator(t *testing.T) {
	logic := setupResourceLogic(t)

	_, err := logic.UpdateResource("1", types.UpdateResourceArgs{
		Content: types.ResourceContent(`{"title":"T2"}`),
	}, "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestUpdateStateRejectsUnknownState(t *testing.T) {
	logic := setupResourceLogic(t)

	err := logic.UpdateState("1", "reviewing")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestListResourcesRejectsEmptyType(t *testing.T) {
	logic := setupResourceLogic(t)

	_, err := logic.ListResourcesByType("")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

// TestResourceLifecycle 走完整生命周期：创建、追加版本、替换标签、软删除。
// 需要可用的数据库连接，未配置时跳过。
func TestResourceLifecycle(t *testing.T) {
	if os.Getenv("VERSO_API_POSTGRESQL_DSN") == "" {
		t.Skip("VERSO_API_POSTGRESQL_DSN not set")
	}

	app := NewCore()
	require.NoError(t, app.Store().Install())
	logic := v1.NewResourceLogic(ctx, app)

	detail, err := logic.CreateResource(types.CreateResourceArgs{
		Type:        "article",
		CreatedByID: "u1",
		Content:     types.ResourceContent(`{"title":"T"}`),
		Tags:        []string{"x", "y"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, detail.ID)
	require.NotNil(t, detail.CurrentVersionID)
	assert.Nil(t, detail.Fields)
	assert.Equal(t, types.RESOURCE_STATE_DRAFT, detail.State)
	require.Len(t, detail.Tags, 2)
	assert.Equal(t, "x", detail.Tags[0].Label)
	assert.Equal(t, "y", detail.Tags[1].Label)

	// 内容更新追加新版本并重定向当前版本指针
	updated, err := logic.UpdateResource(detail.ID, types.UpdateResourceArgs{
		Content: types.ResourceContent(`{"title":"T2"}`),
	}, "u1")
	require.NoError(t, err)
	require.NotNil(t, updated.CurrentVersion)

	var content map[string]interface{}
	require.NoError(t, json.Unmarshal(updated.CurrentVersion.Content, &content))
	assert.Equal(t, "T2", content["title"])
	assert.NotEqual(t, *detail.CurrentVersionID, *updated.CurrentVersionID)

	history, err := logic.GetVersionHistory(detail.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, *updated.CurrentVersionID, history[1].ID)

	// 标签整体替换：旧关联删除，标签行本身保留
	retagged, err := logic.UpdateResource(detail.ID, types.UpdateResourceArgs{
		Tags: []string{"b"},
	}, "u1")
	require.NoError(t, err)
	require.Len(t, retagged.Tags, 1)
	assert.Equal(t, "b", retagged.Tags[0].Label)

	require.NoError(t, logic.DeleteResource(detail.ID))

	_, err = logic.GetResource(detail.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	list, err := logic.ListResourcesByType("article")
	require.NoError(t, err)
	for _, item := range list {
		assert.NotEqual(t, detail.ID, item.ID)
	}
}
