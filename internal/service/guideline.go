package service

import "github.com/mealsafe/backend/internal/types"

// citationNoEvidence labels guidelines for diseases we have no table entry
// for, so the prompt never presents an empty guideline as established fact.
const citationNoEvidence = "근거 자료 없음 (no clinical guideline on file)"

const citationGuidelineTable = "질환별 식이 가이드라인 (내부 정리본)"

// diseaseGuidelines is the fixed in-memory guideline table keyed by disease
// identifier.
var diseaseGuidelines = map[string]types.DiseaseGuideline{
	"hypertension": {
		Disease: "hypertension",
		Recommendations: []string{
			"나트륨 섭취를 하루 2,000mg 이하로 제한",
			"칼륨이 풍부한 채소와 과일 섭취",
			"저지방 단백질 위주의 식단 유지",
		},
		Avoid: []string{
			"국물 음식과 젓갈류 등 고염 식품",
			"가공육, 인스턴트 식품",
			"과도한 음주",
		},
		Citations: []string{citationGuidelineTable},
	},
	"diabetes": {
		Disease: "diabetes",
		Recommendations: []string{
			"혈당지수가 낮은 통곡물 위주의 탄수화물 선택",
			"규칙적인 식사 시간과 일정한 탄수화물 양 유지",
			"식이섬유 섭취 확대",
		},
		Avoid: []string{
			"설탕이 첨가된 음료와 디저트",
			"정제 탄수화물 (흰쌀, 흰빵)",
			"공복 음주",
		},
		Citations: []string{citationGuidelineTable},
	},
	"hyperlipidemia": {
		Disease: "hyperlipidemia",
		Recommendations: []string{
			"불포화지방산 위주의 지방 섭취",
			"등푸른 생선, 견과류 섭취",
			"식이섬유가 풍부한 식품 섭취",
		},
		Avoid: []string{
			"포화지방이 많은 튀김류, 육류 지방",
			"트랜스지방 함유 가공식품",
			"내장류, 버터",
		},
		Citations: []string{citationGuidelineTable},
	},
	"kidney_disease": {
		Disease: "kidney_disease",
		Recommendations: []string{
			"단백질 섭취량을 의료진 권고 범위로 조절",
			"저염 조리법 사용",
		},
		Avoid: []string{
			"고칼륨 식품 (바나나, 감자 등) 과다 섭취",
			"고나트륨 국물 음식",
		},
		Citations: []string{citationGuidelineTable},
	},
	"gastritis": {
		Disease: "gastritis",
		Recommendations: []string{
			"소량씩 자주 먹는 규칙적인 식사",
			"자극이 적은 조리법 (찜, 삶기) 선택",
		},
		Avoid: []string{
			"맵고 짠 자극적인 음식",
			"카페인, 탄산음료, 술",
		},
		Citations: []string{citationGuidelineTable},
	},
}

// GuidelineFor returns the dietary guideline for a disease. Unknown diseases
// yield an empty guideline carrying a no-evidence citation, never an error.
func GuidelineFor(disease string) types.DiseaseGuideline {
	if g, ok := diseaseGuidelines[disease]; ok {
		return g
	}
	return types.DiseaseGuideline{
		Disease:         disease,
		Recommendations: []string{},
		Avoid:           []string{},
		Citations:       []string{citationNoEvidence},
	}
}
