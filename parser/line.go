package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bjquota/models"
)

// ErrNoMatch reports a line that passed the pre-filter but does not fit the
// expected whole-line pattern.
var ErrNoMatch = errors.New("line does not match expected pattern")

var (
	// 序号 申请编码 轮候时间
	waitingLinePattern = regexp.MustCompile(
		`^(\d+)\s+(\d+)\s+(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3})$`)

	// 序号 申请编码 姓名 证件号码 家庭代际数 家庭总积分 注册时间
	// The name group is lazy to tolerate variable-length names; the ID group
	// requires exactly 6 leading and 4 trailing digits around the mask.
	scoreLinePattern = regexp.MustCompile(
		`^(\d+)\s+(\d+)\s+([^\d\s]+?)\s+(\d{6}\*{4,}\d{4})\s+(\d+)\s+(\d+)\s+(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3})$`)
)

// headerMarkers identify header/footer noise lines discarded before pattern
// matching, regardless of format.
var headerMarkers = []string{
	"序号", "申请编码", "轮候时间", "主申请人", "积分", "页码", "共", "页",
}

// IsNoiseLine reports whether a stripped line is header/footer noise.
func IsNoiseLine(line string) bool {
	for _, m := range headerMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// MatchLine reports whether a stripped, non-noise line is a data row for the
// given format. For unknown format both patterns are tried.
func MatchLine(line string, format models.FormatKind) bool {
	switch format {
	case models.FormatWaitingList:
		return waitingLinePattern.MatchString(line)
	case models.FormatScoreRanking:
		return scoreLinePattern.MatchString(line)
	default:
		return waitingLinePattern.MatchString(line) || scoreLinePattern.MatchString(line)
	}
}

// ParseWaitingLine converts one matched waiting-list line into a typed entry.
func ParseWaitingLine(line string) (models.WaitingListEntry, error) {
	m := waitingLinePattern.FindStringSubmatch(line)
	if m == nil {
		return models.WaitingListEntry{}, ErrNoMatch
	}

	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return models.WaitingListEntry{}, fmt.Errorf("sequence number %q: %w", m[1], err)
	}

	waitingTime, err := parseTimestamp(m[3])
	if err != nil {
		return models.WaitingListEntry{}, fmt.Errorf("waiting time %q: %w", m[3], err)
	}

	return models.WaitingListEntry{
		SequenceNumber:  seq,
		ApplicationCode: m[2],
		WaitingTime:     waitingTime,
	}, nil
}

// ParseScoreLine converts one matched score-ranking line into a typed entry.
// The masked ID number is kept verbatim.
func ParseScoreLine(line string) (models.ScoreRankingEntry, error) {
	m := scoreLinePattern.FindStringSubmatch(line)
	if m == nil {
		return models.ScoreRankingEntry{}, ErrNoMatch
	}

	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return models.ScoreRankingEntry{}, fmt.Errorf("sequence number %q: %w", m[1], err)
	}

	generations, err := strconv.Atoi(m[5])
	if err != nil {
		return models.ScoreRankingEntry{}, fmt.Errorf("generation count %q: %w", m[5], err)
	}

	score, err := strconv.Atoi(m[6])
	if err != nil {
		return models.ScoreRankingEntry{}, fmt.Errorf("family score %q: %w", m[6], err)
	}

	registered, err := parseTimestamp(m[7])
	if err != nil {
		return models.ScoreRankingEntry{}, fmt.Errorf("registration time %q: %w", m[7], err)
	}

	return models.ScoreRankingEntry{
		SequenceNumber:           seq,
		ApplicationCode:          m[2],
		ApplicantName:            strings.TrimSpace(m[3]),
		IDNumber:                 m[4],
		FamilyGenerationCount:    generations,
		TotalFamilyScore:         score,
		EarliestRegistrationTime: registered,
	}, nil
}

// parseTimestamp parses the millisecond timestamp format. The patterns allow
// runs of whitespace between date and time, so the field is normalized to a
// single space first.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(models.TimeLayout, strings.Join(strings.Fields(s), " "))
}
