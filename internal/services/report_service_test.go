package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportPurchases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice", 100)
	bob := env.createUser(t, "bob", 100)
	course := env.createCourse(t, "Go Basics", 40)

	env.buy(t, course.ID, alice.ID)
	env.buy(t, course.ID, bob.ID)

	svc := NewReportService(env.repo, env.logger)
	report, filename, err := svc.ExportPurchases(ctx, course.ID)
	if err != nil {
		t.Fatalf("ExportPurchases failed: %v", err)
	}
	if filename == "" {
		t.Error("empty filename")
	}

	f, err := excelize.OpenReader(bytes.NewReader(report))
	if err != nil {
		t.Fatalf("report is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Purchases")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}

	// Header + 2 purchasers + blank + 2 summary rows.
	if len(rows) < 3 {
		t.Fatalf("got %d rows, want at least 3", len(rows))
	}
	if rows[0][0] != "Username" {
		t.Errorf("header = %v", rows[0])
	}

	usernames := map[string]bool{}
	for _, row := range rows[1:3] {
		usernames[row[0]] = true
	}
	if !usernames["alice"] || !usernames["bob"] {
		t.Errorf("purchaser rows = %v", usernames)
	}
}

func TestExportPurchasesUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(env.repo, env.logger)

	_, _, err := svc.ExportPurchases(context.Background(), 9999)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("ExportPurchases error = %v, want ErrCourseNotFound", err)
	}
}
