package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	item := map[string]types.AttributeValue{
		"sortKey":  &types.AttributeValueMemberS{Value: "2024#m1"},
		"isUnread": &types.AttributeValueMemberBOOL{Value: true},
		"count":    &types.AttributeValueMemberN{Value: "3"},
	}

	assert.Equal(t, "2024#m1", ExtractString(item, "sortKey"))
	assert.Empty(t, ExtractString(item, "count"))
	assert.Empty(t, ExtractString(item, "missing"))

	assert.True(t, ExtractBool(item, "isUnread"))
	assert.False(t, ExtractBool(item, "sortKey"))
	assert.False(t, ExtractBool(item, "missing"))
}
