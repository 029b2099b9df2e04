package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/directory"
)

// Service renders appraisal outcome documents. Record access goes through
// the appraisal service so the viewing rules apply to exports too.
type Service struct {
	appraisals *appraisal.Service
	directory  appraisal.DirectoryAPI
}

func NewService(appraisals *appraisal.Service, dir appraisal.DirectoryAPI) *Service {
	return &Service{appraisals: appraisals, directory: dir}
}

// AppraisalPDF renders a published appraisal record as a PDF document.
func (s *Service) AppraisalPDF(ctx context.Context, caller appraisal.Caller, recordID string) ([]byte, error) {
	rec, err := s.appraisals.ViewRecord(ctx, caller, recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status != appraisal.RecordStatusHRPublished {
		return nil, fmt.Errorf("%w: appraisal record is not yet published", appraisal.ErrConflict)
	}

	var employee *directory.Employee
	if e, err := s.directory.GetEmployee(ctx, rec.EmployeeID); err == nil {
		employee = e
	}
	var manager *directory.Employee
	if rec.ManagerID != "" {
		if m, err := s.directory.GetEmployee(ctx, rec.ManagerID); err == nil {
			manager = m
		}
	}
	// Template may have been deleted since publication; the export degrades
	// to criterion keys in that case.
	tmpl, _ := s.appraisals.GetTemplate(ctx, rec.TemplateID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Appraisal")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName(employee, rec.EmployeeID)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Manager: %s", employeeName(manager, rec.ManagerID)))
	pdf.Ln(7)
	if tmpl != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Template: %s", tmpl.Name))
		pdf.Ln(7)
	}
	if rec.HRPublishedAt != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Published: %s", rec.HRPublishedAt.Format(time.DateOnly)))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Criterion", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Rating", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Weighted", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rec.Ratings {
		title := r.Title
		if title == "" {
			title = r.Key
		}
		weighted := ""
		if r.WeightedScore != nil {
			weighted = fmt.Sprintf("%.2f", *r.WeightedScore)
		}
		pdf.CellFormat(90, 8, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.1f", r.RatingValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, weighted, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	if rec.TotalScore != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Total Score: %.2f", *rec.TotalScore))
		pdf.Ln(7)
	}
	if rec.OverallRatingLabel != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Overall Rating: %s", rec.OverallRatingLabel))
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "", 11)
	writeSection(pdf, "Manager Summary", rec.ManagerSummary)
	writeSection(pdf, "Strengths", rec.Strengths)
	writeSection(pdf, "Areas for Improvement", rec.ImprovementAreas)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, heading, body string) {
	if body == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, body, "", "L", false)
	pdf.Ln(4)
}

func employeeName(e *directory.Employee, fallbackID string) string {
	if e == nil {
		if fallbackID == "" {
			return "unassigned"
		}
		return fallbackID
	}
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}
