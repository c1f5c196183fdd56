package parser

import (
	"strings"

	"bjquota/models"
)

// Marker phrases counted by substring containment. Score-ranking documents
// always also contain the generic 申请编码 header, so score markers are
// checked first as the tie-break.
var (
	scoreMarkers = []string{
		"主申请人姓名", "主申请人证件号码", "家庭总积分", "家庭代际数",
	}
	waitingMarkers = []string{
		"轮候时间", "申请编码",
	}
)

// sampleLimit bounds how much extracted text the detector needs.
const sampleLimit = 2000

// DetectFormat classifies a text sample (first few pages of a document) as
// one of the two known record layouts, or unknown. The decision depends only
// on which markers are present, not where or how often they occur.
func DetectFormat(sample string) models.FormatKind {
	scoreCount := 0
	for _, m := range scoreMarkers {
		if strings.Contains(sample, m) {
			scoreCount++
		}
	}

	waitingCount := 0
	for _, m := range waitingMarkers {
		if strings.Contains(sample, m) {
			waitingCount++
		}
	}

	switch {
	case scoreCount >= 2:
		return models.FormatScoreRanking
	case waitingCount >= 1 && !strings.Contains(sample, "积分"):
		return models.FormatWaitingList
	default:
		return models.FormatUnknown
	}
}
