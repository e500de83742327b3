package service

import (
	"fmt"
	"strings"

	"github.com/mealsafe/backend/internal/types"
)

// BuildUserSummary renders the user-facing text for one analysis output.
// Danger and caution medicine interactions come first, then the overall
// assessment, nutrition risk and per-disease notes; a friendly default
// message keyed by score band closes the summary.
func BuildUserSummary(output *types.MedicalAnalysisOutput) string {
	var lines []string

	for _, di := range output.DrugFoodInteractions {
		if di.RiskLevel != types.RiskDanger {
			continue
		}
		lines = append(lines, fmt.Sprintf("⚠️ 위험: %s 복용 중에는 %s 섭취에 각별한 주의가 필요합니다.", di.MedicineName, output.FoodName))
	}
	for _, di := range output.DrugFoodInteractions {
		if di.RiskLevel != types.RiskCaution {
			continue
		}
		lines = append(lines, fmt.Sprintf("주의: %s 복용 중에는 %s 섭취 시 주의하세요.", di.MedicineName, output.FoodName))
	}

	if summary := output.InteractionAssessment.EvidenceSummary; summary != "" {
		lines = append(lines, summary)
	}
	if desc := output.NutritionalRisk.Description; desc != "" {
		lines = append(lines, desc)
	}
	for _, note := range output.DiseaseNotes {
		if note.Impact == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", note.Disease, note.Impact))
	}

	lines = append(lines, scoreBandMessage(output.FinalScore))
	return strings.Join(lines, "\n")
}

// scoreBandMessage is the closing friendly message per score band.
func scoreBandMessage(score int) string {
	switch {
	case score >= 85:
		return "안심하고 드셔도 좋은 음식이에요! 😊"
	case score >= 70:
		return "대체로 괜찮은 음식이지만, 과식은 피해 주세요."
	default:
		return "주의가 필요한 음식이에요. 섭취 전에 위의 안내를 확인해 주세요."
	}
}
