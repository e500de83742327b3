package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mealsafe/backend/internal/models"
	"github.com/mealsafe/backend/internal/types"
)

const (
	drugApprovalBaseURL = "https://apis.data.go.kr/1471000/DrugPrdtPrmsnInfoService06/getDrugPrdtPrmsnDtlInq05"
	easyDrugBaseURL     = "https://apis.data.go.kr/1471000/DrbEasyDrugInfoService/getDrbEasyDrugList"
	healthFoodBaseURL   = "https://apis.data.go.kr/1471000/HtfsInfoService03/getHtfsItem01"
	recipeBaseURL       = "http://openapi.foodsafetykorea.go.kr/api"

	// recipeFallbackCount is how many unfiltered records the recipe lookup
	// degrades to when nothing matches the requested food.
	recipeFallbackCount = 3
)

// ExternalDataGateway abstracts the public drug, health-food and recipe data
// services behind quota-aware lookups. Every network failure degrades to an
// empty stage result; the medicine and health-food chains end in synthetic
// generation so the caller always gets something.
type ExternalDataGateway struct {
	db           *gorm.DB
	quota        *QuotaGate
	client       *http.Client
	drugAPIKey   string
	recipeAPIKey string
}

// NewExternalDataGateway creates the gateway. Missing API keys are allowed;
// the affected stages are skipped and the chains fall through to synthetic
// data.
func NewExternalDataGateway(db *gorm.DB, quota *QuotaGate, drugAPIKey, recipeAPIKey string) *ExternalDataGateway {
	return &ExternalDataGateway{
		db:           db,
		quota:        quota,
		client:       &http.Client{Timeout: 15 * time.Second},
		drugAPIKey:   drugAPIKey,
		recipeAPIKey: recipeAPIKey,
	}
}

// LookupMedicine resolves medicine facts through the four-stage chain:
// cache, drug-approval search, easy-drug-info search, synthetic generation.
// Each stage short-circuits on the first non-empty result; real and
// synthetic results are written back to the cache. Never returns an error
// and never returns an empty list.
func (g *ExternalDataGateway) LookupMedicine(ctx context.Context, keyword string) ([]types.MedicineFacts, error) {
	if cached := g.medicineFromCache(ctx, keyword); len(cached) > 0 {
		return cached, nil
	}

	if facts := g.searchDrugApproval(ctx, keyword); len(facts) > 0 {
		g.saveMedicineCache(ctx, keyword, facts)
		return facts, nil
	}

	if facts := g.searchEasyDrugInfo(ctx, keyword); len(facts) > 0 {
		g.saveMedicineCache(ctx, keyword, facts)
		return facts, nil
	}

	facts := synthesizeMedicineFacts(keyword)
	g.saveMedicineCache(ctx, keyword, facts)
	return facts, nil
}

// medicineFromCache looks up previously stored facts by exact keyword.
// Entries with a blank item name are stale writes and are ignored.
func (g *ExternalDataGateway) medicineFromCache(ctx context.Context, keyword string) []types.MedicineFacts {
	var rows []models.MedicineCache
	if err := g.db.WithContext(ctx).Where("keyword = ?", keyword).Find(&rows).Error; err != nil {
		log.Printf("[Gateway] medicine cache lookup failed for %q: %v", keyword, err)
		return nil
	}

	facts := make([]types.MedicineFacts, 0, len(rows))
	for _, row := range rows {
		if row.ItemName == "" {
			continue
		}
		facts = append(facts, types.MedicineFacts{
			ItemName:      row.ItemName,
			Manufacturer:  row.Manufacturer,
			Efficacy:      row.Efficacy,
			Warning:       row.Warning,
			Precaution:    row.Precaution,
			Interaction:   row.Interaction,
			SideEffect:    row.SideEffect,
			StorageMethod: row.StorageMethod,
			Synthetic:     row.Synthetic,
		})
	}
	return facts
}

func (g *ExternalDataGateway) saveMedicineCache(ctx context.Context, keyword string, facts []types.MedicineFacts) {
	for _, f := range facts {
		row := models.MedicineCache{
			Keyword:       keyword,
			ItemName:      f.ItemName,
			Manufacturer:  f.Manufacturer,
			Efficacy:      f.Efficacy,
			Warning:       f.Warning,
			Precaution:    f.Precaution,
			Interaction:   f.Interaction,
			SideEffect:    f.SideEffect,
			StorageMethod: f.StorageMethod,
			Synthetic:     f.Synthetic,
		}
		if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
			log.Printf("[Gateway] failed to cache medicine facts for %q: %v", keyword, err)
		}
	}
}

// searchDrugApproval queries the drug product approval service.
func (g *ExternalDataGateway) searchDrugApproval(ctx context.Context, keyword string) []types.MedicineFacts {
	items := g.fetchItems(ctx, QuotaCategoryDrug, drugApprovalBaseURL, url.Values{
		"serviceKey": {g.drugAPIKey},
		"item_name":  {keyword},
		"type":       {"json"},
		"numOfRows":  {"5"},
	})

	facts := make([]types.MedicineFacts, 0, len(items))
	for _, item := range items {
		name := fieldString(item, "ITEM_NAME", "itemName")
		if name == "" {
			continue
		}
		facts = append(facts, types.MedicineFacts{
			ItemName:     name,
			Manufacturer: fieldString(item, "ENTP_NAME", "entpName"),
			Efficacy:     fieldString(item, "EE_DOC_DATA", "eeDocData"),
			Precaution:   fieldString(item, "NB_DOC_DATA", "nbDocData"),
			Interaction:  fieldString(item, "UD_DOC_DATA", "udDocData"),
		})
	}
	return facts
}

// searchEasyDrugInfo queries the plain-language drug information service.
func (g *ExternalDataGateway) searchEasyDrugInfo(ctx context.Context, keyword string) []types.MedicineFacts {
	items := g.fetchItems(ctx, QuotaCategoryDrug, easyDrugBaseURL, url.Values{
		"serviceKey": {g.drugAPIKey},
		"itemName":   {keyword},
		"type":       {"json"},
		"numOfRows":  {"5"},
	})

	facts := make([]types.MedicineFacts, 0, len(items))
	for _, item := range items {
		name := fieldString(item, "itemName", "ITEM_NAME")
		if name == "" {
			continue
		}
		facts = append(facts, types.MedicineFacts{
			ItemName:      name,
			Manufacturer:  fieldString(item, "entpName", "ENTP_NAME"),
			Efficacy:      fieldString(item, "efcyQesitm"),
			Warning:       fieldString(item, "atpnWarnQesitm"),
			Precaution:    fieldString(item, "atpnQesitm"),
			Interaction:   fieldString(item, "intrcQesitm"),
			SideEffect:    fieldString(item, "seQesitm"),
			StorageMethod: fieldString(item, "depositMethodQesitm"),
		})
	}
	return facts
}

// LookupHealthFood resolves health-functional-food records: product-name
// search, then raw-material search, then synthetic generation.
func (g *ExternalDataGateway) LookupHealthFood(ctx context.Context, keyword string) ([]types.HealthFoodInfo, error) {
	if foods := g.searchHealthFood(ctx, url.Values{
		"serviceKey": {g.drugAPIKey},
		"Prduct":     {keyword},
		"type":       {"json"},
		"numOfRows":  {"5"},
	}); len(foods) > 0 {
		return foods, nil
	}

	if foods := g.searchHealthFood(ctx, url.Values{
		"serviceKey": {g.drugAPIKey},
		"Rawmtrl":    {keyword},
		"type":       {"json"},
		"numOfRows":  {"5"},
	}); len(foods) > 0 {
		return foods, nil
	}

	return synthesizeHealthFoods(keyword), nil
}

func (g *ExternalDataGateway) searchHealthFood(ctx context.Context, params url.Values) []types.HealthFoodInfo {
	items := g.fetchItems(ctx, QuotaCategoryHealthFood, healthFoodBaseURL, params)

	foods := make([]types.HealthFoodInfo, 0, len(items))
	for _, item := range items {
		name := fieldString(item, "PRDUCT", "PRDLST_NM", "prduct")
		if name == "" {
			continue
		}
		foods = append(foods, types.HealthFoodInfo{
			ProductName:   name,
			Company:       fieldString(item, "ENTRPS", "BSSH_NM"),
			Functionality: fieldString(item, "MAIN_FNCTN", "PRIMARY_FNCLTY"),
			IntakeMethod:  fieldString(item, "SRV_USE", "NTK_MTHD"),
			Precaution:    fieldString(item, "INTAKE_HINT1", "IFTKN_ATNT_MATR_CN"),
		})
	}
	return foods
}

// LookupRecipes fetches recipe records and filters them by substring match
// of the food name against recipe name or hashtag. When nothing matches it
// degrades to the first few unfiltered records rather than an empty list.
func (g *ExternalDataGateway) LookupRecipes(ctx context.Context, foodName string) ([]types.Recipe, error) {
	if g.recipeAPIKey == "" {
		log.Printf("[Gateway] recipe API key not configured, skipping lookup")
		return nil, nil
	}
	if !g.quota.TryAcquire(ctx, QuotaCategoryRecipe) {
		log.Printf("[Gateway] recipe API quota exhausted, skipping lookup")
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s/COOKRCP01/json/1/100", recipeBaseURL, g.recipeAPIKey)
	body, err := g.get(ctx, endpoint)
	if err != nil {
		log.Printf("[Gateway] recipe lookup failed: %v", err)
		return nil, nil
	}

	items, err := normalizeItems(body)
	if err != nil {
		log.Printf("[Gateway] recipe response decode failed: %v", err)
		return nil, nil
	}

	all := make([]types.Recipe, 0, len(items))
	for _, item := range items {
		name := fieldString(item, "RCP_NM")
		if name == "" {
			continue
		}
		all = append(all, types.Recipe{
			Name:          name,
			CookingMethod: fieldString(item, "RCP_WAY2"),
			Category:      fieldString(item, "RCP_PAT2"),
			Calories:      fieldFloat(item, "INFO_ENG"),
			Sodium:        fieldFloat(item, "INFO_NA"),
			Carbohydrates: fieldFloat(item, "INFO_CAR"),
			Protein:       fieldFloat(item, "INFO_PRO"),
			Fat:           fieldFloat(item, "INFO_FAT"),
			Hashtag:       fieldString(item, "HASH_TAG"),
			Ingredients:   fieldString(item, "RCP_PARTS_DTLS"),
		})
	}

	matched := make([]types.Recipe, 0, len(all))
	for _, r := range all {
		if strings.Contains(r.Name, foodName) || strings.Contains(r.Hashtag, foodName) {
			matched = append(matched, r)
		}
	}
	if len(matched) > 0 {
		return matched, nil
	}
	if len(all) > recipeFallbackCount {
		all = all[:recipeFallbackCount]
	}
	return all, nil
}

// fetchItems runs one quota-gated GET against a drug-style endpoint and
// normalizes the item list. Any failure yields an empty list.
func (g *ExternalDataGateway) fetchItems(ctx context.Context, category, baseURL string, params url.Values) []map[string]any {
	if g.drugAPIKey == "" {
		log.Printf("[Gateway] %s API key not configured, skipping lookup", category)
		return nil
	}
	if !g.quota.TryAcquire(ctx, category) {
		log.Printf("[Gateway] %s API quota exhausted, skipping lookup", category)
		return nil
	}

	body, err := g.get(ctx, baseURL+"?"+params.Encode())
	if err != nil {
		log.Printf("[Gateway] %s lookup failed: %v", category, err)
		return nil
	}

	items, err := normalizeItems(body)
	if err != nil {
		log.Printf("[Gateway] %s response decode failed: %v", category, err)
		return nil
	}
	return items
}

func (g *ExternalDataGateway) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
