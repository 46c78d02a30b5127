package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hudumahub/marketplace-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir failed validation: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestBookingsMigrationCarriesSlotConstraint(t *testing.T) {
	content := readMigration(t, "*_create_bookings_messages.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS bookings",
		"CONSTRAINT uq_bookings_slot UNIQUE (target_type, target_id, scheduled_time)",
		"CHECK (status IN ('pending', 'confirmed', 'rejected', 'completed', 'cancelled'))",
		"DROP TABLE IF EXISTS bookings",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestBranchLocationsMigrationLinksBookings(t *testing.T) {
	content := readMigration(t, "*_create_branch_locations.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS business_branch_locations",
		"CREATE TABLE IF NOT EXISTS provider_locations",
		"FOREIGN KEY (branch_id) REFERENCES business_branch_locations(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS business_branch_locations",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUniqueConstraintsPresent(t *testing.T) {
	users := readMigration(t, "*_create_users.sql")
	for _, sub := range []string{"CONSTRAINT uq_users_username UNIQUE (username)", "CONSTRAINT uq_users_email UNIQUE (email)"} {
		if !strings.Contains(users, sub) {
			t.Errorf("users migration missing %q", sub)
		}
	}

	reviews := readMigration(t, "*_create_reviews_favorites.sql")
	for _, sub := range []string{
		"CONSTRAINT uq_reviews_reviewer_target UNIQUE (reviewer_id, target_type, target_id)",
		"CONSTRAINT uq_favorites_user_target UNIQUE (user_id, target_type, target_id)",
	} {
		if !strings.Contains(reviews, sub) {
			t.Errorf("reviews migration missing %q", sub)
		}
	}
}
