package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

func TestFeatureRequestTitleQueryIgnoresCase(t *testing.T) {
	repo := NewFeatureRequestRepository(newDryRunDB(t))

	var rows []entities.FeatureRequest
	stmt := repo.titleQuery(context.Background(), "thr_1", "  Bulk User Editing ").Find(&rows).Statement

	sql := stmt.SQL.String()
	for _, fragment := range []string{"feature_requests", "thread_id = ?", "lower(btrim(title)) = ?"} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("expected %q in title SQL, got: %s", fragment, sql)
		}
	}

	var sawTitle bool
	for _, v := range stmt.Vars {
		if v == "bulk user editing" {
			sawTitle = true
		}
	}
	if !sawTitle {
		t.Fatalf("title should be bound lower-cased and trimmed, got %v", stmt.Vars)
	}
}

func TestFeatureRequestBlankTitleNeverExists(t *testing.T) {
	repo := NewFeatureRequestRepository(newDryRunDB(t))

	exists, err := repo.ExistsTitle(context.Background(), "thr_1", "   ")
	if err != nil || exists {
		t.Fatalf("blank title should short-circuit, exists=%v err=%v", exists, err)
	}
}
