package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	v1 "github.com/verso-cms/verso/app/logic/v1"
	"github.com/verso-cms/verso/app/response"
	"github.com/verso-cms/verso/pkg/types"
	"github.com/verso-cms/verso/pkg/utils"
)

type CreateResourceRequest struct {
	Type        string          `json:"type" binding:"required"`
	CreatedByID string          `json:"created_by_id" binding:"required"`
	Content     json.RawMessage `json:"content" binding:"required"`
	Fields      json.RawMessage `json:"fields"`
	Tags        []string        `json:"tags"`
}

func (s *HttpSrv) CreateResource(c *gin.Context) {
	var (
		err error
		req CreateResourceRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	detail, err := v1.NewResourceLogic(c, s.Core).CreateResource(types.CreateResourceArgs{
		Type:        req.Type,
		CreatedByID: req.CreatedByID,
		Content:     types.ResourceContent(req.Content),
		Fields:      types.ResourceFields(req.Fields),
		Tags:        req.Tags,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, detail)
}

func (s *HttpSrv) GetResource(c *gin.Context) {
	resourceID, _ := c.Params.Get("resourceid")

	detail, err := v1.NewResourceLogic(c, s.Core).GetResource(resourceID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, detail)
}

type ListResourcesResponse struct {
	List []types.ContentResourceDetail `json:"list"`
}

func (s *HttpSrv) ListResources(c *gin.Context) {
	resourceType := c.Query("type")

	list, err := v1.NewResourceLogic(c, s.Core).ListResourcesByType(resourceType)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListResourcesResponse{
		List: list,
	})
}

type UpdateResourceRequest struct {
	UpdatedByID string          `json:"updated_by_id" binding:"required"`
	Fields      json.RawMessage `json:"fields"`
	Content     json.RawMessage `json:"content"`
	Tags        []string        `json:"tags"`
}

func (s *HttpSrv) UpdateResource(c *gin.Context) {
	var (
		err error
		req UpdateResourceRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	resourceID, _ := c.Params.Get("resourceid")
	detail, err := v1.NewResourceLogic(c, s.Core).UpdateResource(resourceID, types.UpdateResourceArgs{
		Fields:  types.ResourceFields(req.Fields),
		Content: types.ResourceContent(req.Content),
		Tags:    req.Tags,
	}, req.UpdatedByID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, detail)
}

type UpdateResourceStateRequest struct {
	State string `json:"state" binding:"required"`
}

func (s *HttpSrv) UpdateResourceState(c *gin.Context) {
	var (
		err error
		req UpdateResourceStateRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	resourceID, _ := c.Params.Get("resourceid")
	if err = v1.NewResourceLogic(c, s.Core).UpdateState(resourceID, req.State); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteResource(c *gin.Context) {
	resourceID, _ := c.Params.Get("resourceid")

	err := v1.NewResourceLogic(c, s.Core).DeleteResource(resourceID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type VersionHistoryResponse struct {
	List []types.ContentVersion `json:"list"`
}

func (s *HttpSrv) GetResourceVersions(c *gin.Context) {
	resourceID, _ := c.Params.Get("resourceid")

	list, err := v1.NewResourceLogic(c, s.Core).GetVersionHistory(resourceID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, VersionHistoryResponse{
		List: list,
	})
}
