package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectionCacheExpiry_BoundsStaleListing(t *testing.T) {
	assert.Greater(t, CollectionCacheExpiry, time.Duration(0))
	assert.LessOrEqual(t, CollectionCacheExpiry, 5*time.Minute)
}
