package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/analytics"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// PDFGenerator generates blood pressure tracking reports
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// ReportData contains all data needed for report generation
type ReportData struct {
	UserName      string
	DateRange     string
	BloodPressure []model.BloodPressureReading
	Medications   []model.Medication
	Doses         []model.MedicationDose
	DietLogs      []model.DietEntry
	ExerciseLogs  []model.ExerciseEntry
	Streak        model.StreakResult
	Quality       model.QualityScore
	Suggestions   []string
}

// Generate creates a PDF report from the provided data
func (g *PDFGenerator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating PDF report",
		zap.String("user_name", data.UserName),
		zap.String("date_range", data.DateRange),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.AddPage()

	g.addTitle(pdf, "Blood Pressure Report", data.UserName, data.DateRange)

	g.addBloodPressureTrends(pdf, data.BloodPressure)
	g.addStreakSummary(pdf, data.Streak)
	g.addQualityBreakdown(pdf, data.Quality, data.Suggestions)
	g.addMedicationList(pdf, data.Medications)
	g.addMedicationAdherence(pdf, data.Doses)
	g.addLifestyleLogs(pdf, data.DietLogs, data.ExerciseLogs)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, title, userName, dateRange string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Patient: %s", userName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s", dateRange), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addBloodPressureTrends adds blood pressure trends section
func (g *PDFGenerator) addBloodPressureTrends(pdf *gofpdf.Fpdf, readings []model.BloodPressureReading) {
	g.addSectionHeader(pdf, "Blood Pressure Trends")

	if len(readings) == 0 {
		pdf.CellFormat(0, 8, "No blood pressure readings recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	// Calculate averages
	var totalSystolic, totalDiastolic, totalPulse int
	for _, reading := range readings {
		totalSystolic += reading.Systolic
		totalDiastolic += reading.Diastolic
		totalPulse += reading.Pulse
	}

	count := len(readings)
	avgSystolic := float64(totalSystolic) / float64(count)
	avgDiastolic := float64(totalDiastolic) / float64(count)
	avgPulse := float64(totalPulse) / float64(count)

	pdf.CellFormat(0, 6, fmt.Sprintf("Average: %.0f/%.0f mmHg, Pulse: %.0f bpm", avgSystolic, avgDiastolic, avgPulse), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total readings: %d", count), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Recent Readings:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	maxReadings := 10
	if len(readings) < maxReadings {
		maxReadings = len(readings)
	}

	for i := 0; i < maxReadings; i++ {
		reading := readings[i]
		dateStr := reading.MeasuredAt.Format("2006-01-02 15:04")
		line := fmt.Sprintf("%s: %d/%d mmHg, Pulse: %d bpm",
			dateStr, reading.Systolic, reading.Diastolic, reading.Pulse)
		if reading.Notes != nil && *reading.Notes != "" {
			line += fmt.Sprintf(" (%s)", *reading.Notes)
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addStreakSummary adds the logging streak section
func (g *PDFGenerator) addStreakSummary(pdf *gofpdf.Fpdf, streak model.StreakResult) {
	g.addSectionHeader(pdf, "Logging Streak")

	pdf.CellFormat(0, 6, fmt.Sprintf("Current streak: %d day(s)", streak.CurrentStreak), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Longest streak: %d day(s)", streak.LongestStreak), "", 1, "L", false, 0, "")
	if streak.LastLogDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Last logged: %s", streak.LastLogDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Next milestone: %d days (%d%% there)", streak.NextMilestone, streak.MilestoneProgress), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addQualityBreakdown adds the data quality section
func (g *PDFGenerator) addQualityBreakdown(pdf *gofpdf.Fpdf, quality model.QualityScore, suggestions []string) {
	g.addSectionHeader(pdf, "Data Quality")

	pdf.CellFormat(0, 6, fmt.Sprintf("Overall score: %d/100", quality.Overall), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	dimensions := make([]string, 0, len(quality.Breakdown))
	for dim := range quality.Breakdown {
		dimensions = append(dimensions, dim)
	}
	sort.Strings(dimensions)

	for _, dim := range dimensions {
		pdf.CellFormat(0, 5, fmt.Sprintf("  %s: %d/100", dim, quality.Breakdown[dim]), "", 1, "L", false, 0, "")
	}

	if len(suggestions) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Suggestions:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, suggestion := range suggestions {
			pdf.CellFormat(0, 5, fmt.Sprintf("  - %s", suggestion), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}

// addMedicationList adds medication list section
func (g *PDFGenerator) addMedicationList(pdf *gofpdf.Fpdf, medications []model.Medication) {
	g.addSectionHeader(pdf, "Medication List")

	if len(medications) == 0 {
		pdf.CellFormat(0, 8, "No medications recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, med := range medications {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, med.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Dosage: %s", med.Dosage), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Frequency: %s", analytics.FrequencyLabel(med.Frequency)), "", 1, "L", false, 0, "")
		if perDay := analytics.ExpectedDosesPerDay(med.Frequency); perDay > 0 {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Scheduled doses per day: %d", perDay), "", 1, "L", false, 0, "")
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("  Start Date: %s", med.StartDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		if med.EndDate != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  End Date: %s", med.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		}
		if med.Notes != nil && *med.Notes != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Notes: %s", *med.Notes), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
	pdf.Ln(5)
}

// addMedicationAdherence adds medication adherence section
func (g *PDFGenerator) addMedicationAdherence(pdf *gofpdf.Fpdf, doses []model.MedicationDose) {
	g.addSectionHeader(pdf, "Medication Adherence")

	if len(doses) == 0 {
		pdf.CellFormat(0, 8, "No scheduled doses in this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	taken := 0
	for _, dose := range doses {
		if dose.WasTaken {
			taken++
		}
	}

	rate := float64(taken) / float64(len(doses)) * 100
	pdf.CellFormat(0, 6, fmt.Sprintf("Doses taken: %d of %d (%.0f%%)", taken, len(doses), rate), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addLifestyleLogs adds diet and exercise section
func (g *PDFGenerator) addLifestyleLogs(pdf *gofpdf.Fpdf, dietLogs []model.DietEntry, exerciseLogs []model.ExerciseEntry) {
	g.addSectionHeader(pdf, "Diet and Exercise")

	if len(dietLogs) == 0 && len(exerciseLogs) == 0 {
		pdf.CellFormat(0, 8, "No lifestyle data recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	if len(dietLogs) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Meals:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, entry := range dietLogs {
			dateStr := entry.LoggedAt.Format("2006-01-02")
			pdf.CellFormat(0, 5, fmt.Sprintf("  %s %s: %s", dateStr, entry.MealType, entry.Description), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	if len(exerciseLogs) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Workouts:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, entry := range exerciseLogs {
			dateStr := entry.LoggedAt.Format("2006-01-02")
			pdf.CellFormat(0, 5, fmt.Sprintf("  %s: %s, %d min", dateStr, entry.Activity, entry.DurationMinutes), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}
