package reports

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"bizadmin/internal/domain/admin"
)

const (
	TypeFinancial = "financial"
	TypeEmployee  = "employee"
	TypeTasks     = "tasks"

	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

var (
	ErrUnknownType   = errors.New("unknown report type")
	ErrUnknownFormat = errors.New("unknown report format")
)

type SummaryItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is a renderer-neutral table: a summary block plus columnar rows.
type Report struct {
	Type        string        `json:"type"`
	GeneratedAt string        `json:"generatedAt"`
	Summary     []SummaryItem `json:"summary"`
	Columns     []string      `json:"columns"`
	Rows        [][]string    `json:"rows"`
}

type Service struct {
	admins *admin.Service
	now    func() time.Time
}

func NewService(admins *admin.Service, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{admins: admins, now: now}
}

// Build assembles the requested report over the current collections.
func (s *Service) Build(ctx context.Context, reportType string, rangeKey admin.RangeKey) (Report, error) {
	switch reportType {
	case TypeFinancial:
		return s.buildFinancial(ctx, rangeKey), nil
	case TypeEmployee:
		return s.buildEmployee(ctx), nil
	case TypeTasks:
		return s.buildTasks(ctx), nil
	default:
		return Report{}, fmt.Errorf("%q: %w", reportType, ErrUnknownType)
	}
}

// Render writes the report in the requested format.
func (s *Service) Render(w io.Writer, report Report, format string) error {
	switch format {
	case FormatJSON:
		return s.renderJSON(w, report)
	case FormatCSV:
		return s.renderCSV(w, report)
	case FormatPDF:
		return s.renderPDF(w, report)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

func (s *Service) buildFinancial(ctx context.Context, rangeKey admin.RangeKey) Report {
	stats := s.admins.FinancialStats(ctx, rangeKey)
	net := stats.TotalRevenue.Sub(stats.TotalExpenses)

	report := Report{
		Type:        TypeFinancial,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Summary: []SummaryItem{
			{Label: "Total Revenue", Value: stats.TotalRevenue.StringFixed(2)},
			{Label: "Total Expenses", Value: stats.TotalExpenses.StringFixed(2)},
			{Label: "Net Profit", Value: net.StringFixed(2)},
		},
		Columns: []string{"date", "type", "category", "amount", "description"},
	}
	for _, txn := range s.admins.Finances(ctx) {
		report.Rows = append(report.Rows, []string{
			txn.Date,
			string(txn.Type),
			txn.Category,
			txn.Amount.StringFixed(2),
			txn.Description,
		})
	}
	return report
}

func (s *Service) buildEmployee(ctx context.Context) Report {
	employees := s.admins.Employees(ctx)
	tasks := s.admins.Tasks(ctx)

	active := 0
	for _, emp := range employees {
		if emp.Status == admin.StatusActive {
			active++
		}
	}

	report := Report{
		Type:        TypeEmployee,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Summary: []SummaryItem{
			{Label: "Total Employees", Value: strconv.Itoa(len(employees))},
			{Label: "Active Employees", Value: strconv.Itoa(active)},
		},
		Columns: []string{"name", "role", "status", "tasksCompleted", "tasksInProgress"},
	}
	for _, emp := range employees {
		completed, inProgress := 0, 0
		for _, task := range tasks {
			if task.AssignedTo != emp.Name {
				continue
			}
			switch task.Status {
			case admin.TaskCompleted:
				completed++
			case admin.TaskInProgress:
				inProgress++
			}
		}
		report.Rows = append(report.Rows, []string{
			emp.Name,
			string(emp.Role),
			string(emp.Status),
			strconv.Itoa(completed),
			strconv.Itoa(inProgress),
		})
	}
	return report
}

func (s *Service) buildTasks(ctx context.Context) Report {
	stats := s.admins.Statistics(ctx)
	tasks := s.admins.Tasks(ctx)

	inProgress := 0
	for _, task := range tasks {
		if task.Status == admin.TaskInProgress {
			inProgress++
		}
	}

	report := Report{
		Type:        TypeTasks,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Summary: []SummaryItem{
			{Label: "Total", Value: strconv.Itoa(stats.TotalTasks)},
			{Label: "Completed", Value: strconv.Itoa(stats.CompletedTasks)},
			{Label: "In Progress", Value: strconv.Itoa(inProgress)},
			{Label: "Pending", Value: strconv.Itoa(stats.PendingTasks)},
		},
		Columns: []string{"title", "assignedTo", "status", "priority", "deadline"},
	}
	for _, task := range tasks {
		report.Rows = append(report.Rows, []string{
			task.Title,
			task.AssignedTo,
			string(task.Status),
			string(task.Priority),
			task.Deadline,
		})
	}
	return report
}

func (s *Service) renderJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (s *Service) renderCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(report.Columns); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *Service) renderPDF(w io.Writer, report Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("%s report", report.Type))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", report.GeneratedAt))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range report.Summary {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", item.Label, item.Value))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	colWidth := 190.0 / float64(len(report.Columns))
	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range report.Columns {
		pdf.CellFormat(colWidth, 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range report.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
