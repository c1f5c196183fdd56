package parser

import (
	"strings"
	"testing"

	"bjquota/models"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   models.FormatKind
	}{
		{
			name:   "score ranking with all four markers",
			sample: "序号 主申请人申请编码 主申请人姓名 主申请人证件号码 家庭代际数 家庭总积分 成员最早注册时间",
			want:   models.FormatScoreRanking,
		},
		{
			name:   "score ranking with exactly two markers",
			sample: "主申请人姓名 家庭总积分",
			want:   models.FormatScoreRanking,
		},
		{
			name:   "waiting list header",
			sample: "序号 申请编码 轮候时间",
			want:   models.FormatWaitingList,
		},
		{
			name:   "single waiting marker",
			sample: "轮候时间",
			want:   models.FormatWaitingList,
		},
		{
			name:   "waiting marker suppressed by score substring",
			sample: "申请编码 积分",
			want:   models.FormatUnknown,
		},
		{
			name:   "single score marker is not enough",
			sample: "家庭代际数",
			want:   models.FormatUnknown,
		},
		{
			name:   "empty sample",
			sample: "",
			want:   models.FormatUnknown,
		},
		{
			name:   "unrelated text",
			sample: "北京市交通委员会公告",
			want:   models.FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.sample); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.sample, got, tt.want)
			}
		})
	}
}

func TestDetectFormatOrderIndependent(t *testing.T) {
	markers := []string{"主申请人姓名", "轮候时间", "家庭总积分", "申请编码"}

	permutations := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1},
	}

	var want models.FormatKind
	for i, perm := range permutations {
		parts := make([]string, len(perm))
		for j, p := range perm {
			parts[j] = markers[p]
		}
		sample := strings.Join(parts, " ")

		got := DetectFormat(sample)
		if i == 0 {
			want = got
			continue
		}
		if got != want {
			t.Errorf("permutation %v: got %q, want %q", perm, got, want)
		}
	}
}

func TestDetectFormatScorePriority(t *testing.T) {
	// Both waiting-list markers present alongside two score markers: the
	// score decision must win.
	sample := "申请编码 轮候时间 主申请人姓名 主申请人证件号码"
	if got := DetectFormat(sample); got != models.FormatScoreRanking {
		t.Errorf("DetectFormat = %q, want %q", got, models.FormatScoreRanking)
	}
}
