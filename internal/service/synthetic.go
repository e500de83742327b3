package service

import (
	"strings"

	"github.com/mealsafe/backend/internal/types"
)

// Hand-curated product templates for common medicine keywords, used when the
// drug APIs are out of quota or returned nothing. Matched exact-first, then
// by substring either way.
var syntheticMedicineTemplates = map[string][]types.MedicineFacts{
	"타이레놀": {
		{
			ItemName:     "타이레놀정 500mg",
			Manufacturer: "한국얀센",
			Efficacy:     "해열, 감기에 의한 통증 완화",
			Warning:      "매일 세 잔 이상 정기적으로 술을 마시는 사람은 복용 전 반드시 의사와 상의하십시오.",
			Precaution:   "간장애 환자는 복용을 피하고, 음주 후 복용을 삼가십시오.",
			Interaction:  "알코올과 병용 시 간 손상 위험이 증가합니다.",
			Synthetic:    true,
		},
	},
	"아스피린": {
		{
			ItemName:     "아스피린장용정 100mg",
			Manufacturer: "바이엘코리아",
			Efficacy:     "혈전 생성 억제",
			Warning:      "위장출혈 증상이 나타나면 즉시 복용을 중단하고 의사와 상담하십시오.",
			Precaution:   "음주 시 위장관 출혈 위험이 커지므로 주의하십시오.",
			Interaction:  "다른 소염진통제와 병용 시 출혈 위험이 증가합니다.",
			Synthetic:    true,
		},
	},
	"와파린": {
		{
			ItemName:     "와파린나트륨정 2mg",
			Manufacturer: "제일약품",
			Efficacy:     "혈액 응고 방지",
			Warning:      "비타민K가 풍부한 녹색 채소(시금치, 케일 등) 섭취량의 급격한 변화는 위험합니다. 반드시 의사와 상담하십시오.",
			Precaution:   "자몽 주스와 함께 복용하지 마십시오. 음주를 삼가십시오.",
			Interaction:  "녹색 채소, 자몽, 알코올과 상호작용이 있습니다.",
			Synthetic:    true,
		},
	},
	"메트포르민": {
		{
			ItemName:     "메트포르민염산염정 500mg",
			Manufacturer: "대웅제약",
			Efficacy:     "제2형 당뇨병의 혈당 조절",
			Warning:      "과도한 음주는 유산산증 위험을 높이므로 삼가십시오.",
			Precaution:   "식후 복용을 권장하며, 공복 음주를 피하십시오.",
			Interaction:  "알코올과 병용 시 저혈당 및 유산산증 위험이 있습니다.",
			Synthetic:    true,
		},
	},
	"암로디핀": {
		{
			ItemName:     "암로디핀베실산염정 5mg",
			Manufacturer: "한미약품",
			Efficacy:     "고혈압, 협심증 치료",
			Warning:      "자몽 주스는 혈중 약물 농도를 높일 수 있으므로 주의하십시오.",
			Precaution:   "자몽, 자몽 주스와 함께 복용하지 마십시오.",
			Interaction:  "자몽 성분이 약효를 과도하게 증폭시킬 수 있습니다.",
			Synthetic:    true,
		},
	},
}

// genericSyntheticMedicines is the last-resort product set when the keyword
// matches no template.
func genericSyntheticMedicines(keyword string) []types.MedicineFacts {
	return []types.MedicineFacts{
		{
			ItemName:    keyword,
			Efficacy:    "일반적인 증상 완화 (상세 정보 없음)",
			Precaution:  "정확한 복약 정보는 의사 또는 약사와 상담하십시오. 음주 시 주의가 필요할 수 있습니다.",
			Interaction: "상호작용 정보가 확인되지 않았습니다.",
			Synthetic:   true,
		},
	}
}

// synthesizeMedicineFacts resolves a keyword against the curated templates,
// falling back to the generic set.
func synthesizeMedicineFacts(keyword string) []types.MedicineFacts {
	if facts, ok := syntheticMedicineTemplates[keyword]; ok {
		return facts
	}
	for name, facts := range syntheticMedicineTemplates {
		if strings.Contains(keyword, name) || strings.Contains(name, keyword) {
			return facts
		}
	}
	return genericSyntheticMedicines(keyword)
}

// synthesizeHealthFoods produces a placeholder health-functional-food record
// when both API stages come back empty.
func synthesizeHealthFoods(keyword string) []types.HealthFoodInfo {
	return []types.HealthFoodInfo{
		{
			ProductName:   keyword,
			Functionality: "기능성 정보가 확인되지 않았습니다.",
			IntakeMethod:  "제품 표기 섭취량을 따르십시오.",
			Precaution:    "복용 중인 의약품이 있는 경우 전문가와 상담 후 섭취하십시오.",
			Synthetic:     true,
		},
	}
}
