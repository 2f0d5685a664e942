package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/utils"
)

type reportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewReportService(repo repositories.Repository, logger utils.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ExportPurchases builds an xlsx report of every purchase of the course,
// one row per purchaser plus a revenue summary.
func (s *reportService) ExportPurchases(ctx context.Context, courseID uint) ([]byte, string, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrCourseNotFound
		}
		return nil, "", err
	}

	purchases, err := s.repo.ListPurchasesByCourse(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Purchases"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Username", "Email", "Full Name", "Price Paid", "Purchased At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var revenue int64
	row := 2
	for _, p := range purchases {
		user, err := s.repo.GetUserByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, "", err
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), user.Username)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), user.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), user.FullName())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.PricePaid)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.CreatedAt.Format("2006-01-02 15:04:05"))
		revenue += p.PricePaid
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total purchases")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), len(purchases))
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total revenue")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), revenue)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write report: %w", err)
	}

	filename := fmt.Sprintf("course_%d_purchases.xlsx", course.ID)
	s.logger.Info("purchases report exported", "course_id", courseID, "rows", len(purchases))
	return buf.Bytes(), filename, nil
}
