package service

import (
	"language_center_backend/internal/model"
	"math"
	"testing"
)

func gradeItem(id uint, weight, maxScore float64) model.GradeItem {
	return model.GradeItem{
		BaseModel: model.BaseModel{ID: id},
		Weight:    weight,
		MaxScore:  maxScore,
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name    string
		items   []model.GradeItem
		entries []model.GradeEntry
		want    float64
	}{
		{
			name:    "no entries",
			items:   []model.GradeItem{gradeItem(1, 1, 100)},
			entries: nil,
			want:    0,
		},
		{
			name:  "single item full marks",
			items: []model.GradeItem{gradeItem(1, 1, 100)},
			entries: []model.GradeEntry{
				{ItemID: 1, Score: 100},
			},
			want: 100,
		},
		{
			name: "weights skew the average",
			items: []model.GradeItem{
				gradeItem(1, 3, 100), // exam, weight 3
				gradeItem(2, 1, 100), // homework, weight 1
			},
			entries: []model.GradeEntry{
				{ItemID: 1, Score: 80},
				{ItemID: 2, Score: 100},
			},
			// (80*3 + 100*1) / 4 = 85
			want: 85,
		},
		{
			name: "scores normalize against each item's max",
			items: []model.GradeItem{
				gradeItem(1, 1, 20),
				gradeItem(2, 1, 50),
			},
			entries: []model.GradeEntry{
				{ItemID: 1, Score: 10}, // 50%
				{ItemID: 2, Score: 50}, // 100%
			},
			want: 75,
		},
		{
			name: "ungraded items stay out of the denominator",
			items: []model.GradeItem{
				gradeItem(1, 1, 100),
				gradeItem(2, 5, 100), // not yet graded
			},
			entries: []model.GradeEntry{
				{ItemID: 1, Score: 90},
			},
			want: 90,
		},
		{
			name:  "entry for a deleted item is skipped",
			items: []model.GradeItem{gradeItem(1, 1, 100)},
			entries: []model.GradeEntry{
				{ItemID: 1, Score: 60},
				{ItemID: 99, Score: 100},
			},
			want: 60,
		},
		{
			name:  "zero max score item cannot divide by zero",
			items: []model.GradeItem{gradeItem(1, 1, 0)},
			entries: []model.GradeEntry{
				{ItemID: 1, Score: 0},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverage(tt.items, tt.entries)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WeightedAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}
