package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "verso_"

const (
	TABLE_CONTENT_RESOURCE     = TableName("content_resources")
	TABLE_CONTENT_VERSION      = TableName("content_versions")
	TABLE_TAG                  = TableName("tags")
	TABLE_CONTENT_RESOURCE_TAG = TableName("content_resource_tags")
)
