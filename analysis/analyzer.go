package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"bjquota/models"
)

// Historically, applicants who neither win nor enter the waiting list
// outnumber winners by roughly this factor. Used to estimate the total
// applicant pool from published results.
const applicantMultiplier = 18

// The annual quota fallback when no winner documents exist for a year.
const defaultAnnualQuota = 50000

// StatsProvider supplies the store snapshot the analyzer works from.
type StatsProvider interface {
	Statistics() models.StoreStats
}

// Analyzer derives success rates, waiting time estimates and trends from the
// published result documents.
type Analyzer struct {
	stats StatsProvider
}

// New builds an analyzer over the given statistics source.
func New(stats StatsProvider) *Analyzer {
	return &Analyzer{stats: stats}
}

// YearData groups a year's files by document kind.
type YearData struct {
	Winners []models.FileInfo `json:"winners"`
	Waiting []models.FileInfo `json:"waiting"`
}

// SuccessRate is the per-year estimate of lottery odds.
type SuccessRate struct {
	Year                string  `json:"year"`
	Winners             int     `json:"winners"`
	Waiting             int     `json:"waiting"`
	EstimatedApplicants int     `json:"estimated_applicants"`
	SuccessRate         float64 `json:"success_rate"`
	WaitingRate         float64 `json:"waiting_rate"`
	RejectionRate       float64 `json:"rejection_rate"`
	WinnerFiles         int     `json:"winner_files"`
	WaitingFiles        int     `json:"waiting_files"`
}

// WaitingEstimate is the per-year queue length projection.
type WaitingEstimate struct {
	Year             string  `json:"year"`
	WaitingCount     int     `json:"waiting_count"`
	AnnualQuota      int     `json:"annual_quota"`
	AvgWaitingYears  float64 `json:"avg_waiting_years"`
	AvgWaitingMonths float64 `json:"avg_waiting_months"`
	QueueStatus      string  `json:"queue_status"`
}

// Trends compares the two most recent years with data.
type Trends struct {
	Message            string   `json:"message,omitempty"`
	YearsAnalyzed      []string `json:"years_analyzed,omitempty"`
	LatestYear         string   `json:"latest_year,omitempty"`
	PreviousYear       string   `json:"previous_year,omitempty"`
	SuccessRateChange  float64  `json:"success_rate_change"`
	WaitingCountChange int      `json:"waiting_count_change"`
	TrendDirection     string   `json:"trend_direction,omitempty"`
	CompetitionLevel   string   `json:"competition_level,omitempty"`
	Analysis           string   `json:"analysis,omitempty"`
}

// Overview is the headline block of the comprehensive report.
type Overview struct {
	TotalFiles              int        `json:"total_files"`
	TotalEntries            int        `json:"total_entries"`
	ApplicationCodesIndexed int        `json:"application_codes_indexed"`
	IDNumbersIndexed        int        `json:"id_numbers_indexed"`
	LastUpdate              *time.Time `json:"last_update"`
	AnalysisTimestamp       time.Time  `json:"analysis_timestamp"`
}

// Report is the full comprehensive analysis payload.
type Report struct {
	Overview        Overview                   `json:"overview"`
	YearsData       map[string]YearData        `json:"years_data"`
	SuccessRates    map[string]SuccessRate     `json:"success_rates"`
	WaitingAnalysis map[string]WaitingEstimate `json:"waiting_analysis"`
	Trends          Trends                     `json:"trends"`
	Recommendations []string                   `json:"recommendations"`
}

// Comprehensive assembles the full report.
func (a *Analyzer) Comprehensive() Report {
	stats := a.stats.Statistics()
	years := categorizeByYear(stats.Files)
	rates := successRates(years)
	waiting := waitingEstimates(years)

	return Report{
		Overview: Overview{
			TotalFiles:              stats.TotalFiles,
			TotalEntries:            stats.TotalEntries,
			ApplicationCodesIndexed: stats.ApplicationCodesIndexed,
			IDNumbersIndexed:        stats.IDNumbersIndexed,
			LastUpdate:              stats.LastUpdate,
			AnalysisTimestamp:       time.Now(),
		},
		YearsData:       years,
		SuccessRates:    rates,
		WaitingAnalysis: waiting,
		Trends:          analyzeTrends(rates),
		Recommendations: recommendations(rates, waiting),
	}
}

// SuccessRates returns only the per-year odds estimates.
func (a *Analyzer) SuccessRates() map[string]SuccessRate {
	return successRates(categorizeByYear(a.stats.Statistics().Files))
}

// WaitingTime returns only the per-year queue projections.
func (a *Analyzer) WaitingTime() map[string]WaitingEstimate {
	return waitingEstimates(categorizeByYear(a.stats.Statistics().Files))
}

// TrendAnalysis returns only the year-over-year comparison.
func (a *Analyzer) TrendAnalysis() Trends {
	return analyzeTrends(successRates(categorizeByYear(a.stats.Statistics().Files)))
}

var yearPattern = regexp.MustCompile(`20\d{2}`)

// fileYear reads the publication year from the source URL, falling back to
// the download time. Files with neither land in "unknown".
func fileYear(f models.FileInfo) string {
	if y := yearPattern.FindString(f.SourceURL); y != "" {
		return y
	}
	if !f.DownloadTime.IsZero() {
		return fmt.Sprintf("%d", f.DownloadTime.Year())
	}
	return "unknown"
}

func categorizeByYear(files []models.FileInfo) map[string]YearData {
	years := make(map[string]YearData)
	for _, f := range files {
		year := fileYear(f)
		data := years[year]
		switch f.Format {
		case models.FormatScoreRanking:
			data.Winners = append(data.Winners, f)
		case models.FormatWaitingList:
			data.Waiting = append(data.Waiting, f)
		}
		years[year] = data
	}
	return years
}

func successRates(years map[string]YearData) map[string]SuccessRate {
	rates := make(map[string]SuccessRate)
	for year, data := range years {
		if year == "unknown" {
			continue
		}

		winners := entrySum(data.Winners)
		waiting := entrySum(data.Waiting)
		applicants := winners*applicantMultiplier + waiting

		var successRate, waitingRate float64
		if applicants > 0 {
			successRate = float64(winners) / float64(applicants) * 100
			waitingRate = float64(waiting) / float64(applicants) * 100
		}

		rates[year] = SuccessRate{
			Year:                year,
			Winners:             winners,
			Waiting:             waiting,
			EstimatedApplicants: applicants,
			SuccessRate:         round(successRate, 4),
			WaitingRate:         round(waitingRate, 2),
			RejectionRate:       round(100-successRate-waitingRate, 2),
			WinnerFiles:         len(data.Winners),
			WaitingFiles:        len(data.Waiting),
		}
	}
	return rates
}

func waitingEstimates(years map[string]YearData) map[string]WaitingEstimate {
	estimates := make(map[string]WaitingEstimate)
	for year, data := range years {
		if year == "unknown" {
			continue
		}

		waiting := entrySum(data.Waiting)
		quota := entrySum(data.Winners)
		if quota == 0 {
			quota = defaultAnnualQuota
		}

		var years, months float64
		if waiting > 0 {
			years = float64(waiting) / float64(quota)
			months = years * 12
		}

		estimates[year] = WaitingEstimate{
			Year:             year,
			WaitingCount:     waiting,
			AnnualQuota:      quota,
			AvgWaitingYears:  round(years, 1),
			AvgWaitingMonths: round(months, 1),
			QueueStatus:      queueStatus(years),
		}
	}
	return estimates
}

func queueStatus(waitingYears float64) string {
	switch {
	case waitingYears < 1:
		return "短期等待"
	case waitingYears < 3:
		return "中期等待"
	case waitingYears < 5:
		return "长期等待"
	default:
		return "超长期等待"
	}
}

func analyzeTrends(rates map[string]SuccessRate) Trends {
	if len(rates) < 2 {
		return Trends{Message: "需要至少两年的数据才能进行趋势分析"}
	}

	years := make([]string, 0, len(rates))
	for y := range rates {
		years = append(years, y)
	}
	sort.Strings(years)

	latest := rates[years[len(years)-1]]
	previous := rates[years[len(years)-2]]

	successChange := latest.SuccessRate - previous.SuccessRate
	waitingChange := latest.Waiting - previous.Waiting

	return Trends{
		YearsAnalyzed:      years,
		LatestYear:         latest.Year,
		PreviousYear:       previous.Year,
		SuccessRateChange:  round(successChange, 4),
		WaitingCountChange: waitingChange,
		TrendDirection:     direction(successChange, "上升", "下降"),
		CompetitionLevel:   direction(-successChange, "加剧", "缓解"),
		Analysis:           trendText(successChange, waitingChange),
	}
}

func direction(change float64, up, down string) string {
	switch {
	case change > 0:
		return up
	case change < 0:
		return down
	default:
		return "稳定"
	}
}

func trendText(successChange float64, waitingChange int) string {
	text := "摇号成功率保持稳定"
	if successChange > 0 {
		text = "摇号成功率有所提升"
	} else if successChange < 0 {
		text = "摇号成功率有所下降"
	}

	switch {
	case waitingChange > 0:
		text += "，排队人数增加"
	case waitingChange < 0:
		text += "，排队人数减少"
	default:
		text += "，排队人数基本稳定"
	}
	return text
}

func recommendations(rates map[string]SuccessRate, waiting map[string]WaitingEstimate) []string {
	if len(rates) == 0 {
		return []string{"数据不足，无法生成建议"}
	}

	latestYear := ""
	for y := range rates {
		if y > latestYear {
			latestYear = y
		}
	}
	latest := rates[latestYear]
	latestWaiting := waiting[latestYear]

	var recs []string
	switch {
	case latest.SuccessRate < 0.1:
		recs = append(recs, "摇号成功率极低，建议考虑新能源车型或家庭摇号")
	case latest.SuccessRate < 0.5:
		recs = append(recs, "摇号成功率较低，建议长期准备或考虑其他方案")
	default:
		recs = append(recs, "摇号成功率相对较高，可以继续参与")
	}

	switch {
	case latestWaiting.AvgWaitingYears > 5:
		recs = append(recs, fmt.Sprintf("当前约 %s 人排队，等待时间很长，建议考虑新能源车型",
			humanize.Comma(int64(latestWaiting.WaitingCount))))
	case latestWaiting.AvgWaitingYears > 2:
		recs = append(recs, "排队等待时间较长，建议做好长期准备")
	default:
		recs = append(recs, "排队等待时间相对较短")
	}

	recs = append(recs,
		"建议关注政策变化，及时调整策略",
		"可考虑家庭摇号以提高中签概率",
		"新能源车型配额相对充足，值得考虑",
	)
	return recs
}

func entrySum(files []models.FileInfo) int {
	total := 0
	for _, f := range files {
		total += f.Entries
	}
	return total
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
