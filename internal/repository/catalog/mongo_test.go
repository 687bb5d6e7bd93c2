//go:build container
// +build container

package catalog

import (
	"context"
	"testing"

	"storefront/internal/testhelpers"
)

func TestMongo_Contract(t *testing.T) {
	db := testhelpers.MongoDatabase(t)
	if err := EnsureMongoIndexes(context.Background(), db); err != nil {
		t.Fatalf("EnsureMongoIndexes: %v", err)
	}
	runRepositoryContract(t, NewMongo(db, nil))
}
