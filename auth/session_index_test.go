package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ininahazwe/mfwa-memorial/auth"
)

func TestNewMongoProvider_CreatesSessionExpiryIndex(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ttl index on expiresAt", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		auth.NewMongoProvider(mt.DB, "test-secret", time.Hour)

		var created bool
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "createIndexes" {
				continue
			}
			created = true
			assert.Equal(t, "sessions", evt.Command.Lookup("createIndexes").StringValue())

			index := evt.Command.Lookup("indexes").Array().Index(0).Value().Document()
			key := index.Lookup("key")
			keyField, err := key.Document().LookupErr("expiresAt")
			require.NoError(t, err, "index key must be expiresAt")
			keyDir, ok := keyField.AsInt64OK()
			require.True(t, ok)
			assert.Equal(t, int64(1), keyDir)

			expire, ok := index.Lookup("expireAfterSeconds").AsInt64OK()
			require.True(t, ok, "index must carry expireAfterSeconds")
			assert.Equal(t, int64(0), expire, "documents expire as soon as expiresAt passes")
		}
		require.True(t, created, "provider construction must create the sessions index")
	})
}
