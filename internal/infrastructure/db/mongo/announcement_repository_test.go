package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

func TestDateRangeFilter_OverlapNotContainment(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	got := dateRangeFilter(3, start, end)
	want := bson.M{
		"business_id": int64(3),
		"is_active":   true,
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filter mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestByRoleFilter_WindowAndVisibility(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		role domain.Role
		flag string
	}{
		{domain.RoleAdmin, "visible_to_admins"},
		{domain.RoleSuperAdmin, "visible_to_admins"},
		{domain.RoleTeacher, "visible_to_teachers"},
		{domain.RoleStudent, "visible_to_students"},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			got := byRoleFilter(7, tc.role, now)
			want := bson.M{
				"business_id": int64(7),
				"is_active":   true,
				"start_date":  bson.M{"$lte": now},
				"end_date":    bson.M{"$gte": now},
				tc.flag:       true,
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("filter mismatch:\n got %#v\nwant %#v", got, want)
			}
		})
	}
}
