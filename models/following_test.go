package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseFolloweeKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseFolloweeKind("users")
	require.NoError(t, err)
	assert.Equal(t, FolloweeUsers, kind)

	kind, err = ParseFolloweeKind("communities")
	require.NoError(t, err)
	assert.Equal(t, FolloweeCommunities, kind)

	for _, bad := range []string{"", "user", "Community", "posts"} {
		_, err := ParseFolloweeKind(bad)
		assert.Error(t, err, "kind %q should be rejected", bad)
	}
}

func TestFolloweeConstructors(t *testing.T) {
	t.Parallel()
	id := primitive.NewObjectID()

	f := UserFollowee(id)
	assert.Equal(t, FolloweeUsers, f.Kind)
	assert.Equal(t, id, f.ID)
	assert.NoError(t, f.Validate())

	f = CommunityFollowee(id)
	assert.Equal(t, FolloweeCommunities, f.Kind)
	assert.NoError(t, f.Validate())
}

func TestFolloweeValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, Followee{Kind: "posts", ID: primitive.NewObjectID()}.Validate())
	assert.Error(t, Followee{Kind: FolloweeUsers}.Validate())
	assert.Error(t, Followee{}.Validate())
}
