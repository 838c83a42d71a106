// internal/classify/rules.go
package classify

// The closed statutory building-use category set. The classifier never
// returns a category name outside this list, other than the raw string
// with the warning flag set.
const (
	CatNeighborhood1 = "제1종 근린생활시설"
	CatNeighborhood2 = "제2종 근린생활시설"
	CatDetached      = "단독주택"
	CatMultiUnit     = "공동주택"
	CatCulture       = "문화 및 집회시설"
	CatReligious     = "종교시설"
	CatRetail        = "판매시설"
	CatTransport     = "운수시설"
	CatMedical       = "의료시설"
	CatEducation     = "교육연구시설"
	CatWelfare       = "노유자시설"
	CatTraining      = "수련시설"
	CatAthletic      = "운동시설"
	CatBusiness      = "업무시설"
	CatLodging       = "숙박시설"
	CatAmusement     = "위락시설"
	CatFactory       = "공장"
	CatWarehouse     = "창고시설"
	CatHazardous     = "위험물 저장 및 처리시설"
	CatAutomotive    = "자동차 관련시설"
	CatAgricultural  = "동물 및 식물 관련시설"
	CatWaste         = "분뇨 및 쓰레기 처리시설"
	CatCorrectional  = "교정 및 군사시설"
	CatBroadcast     = "방송통신시설"
	CatPower         = "발전시설"
	CatFunerary      = "묘지 관련 시설"
	CatTourismRest   = "관광 휴게시설"
	CatFuneralHall   = "장례식장"
)

// NeedsConfirmation is the explicit default rendered when no judgment is
// possible (missing usage string or missing area).
const NeedsConfirmation = "확인요망"

// UsageSelectionOptions are the choices offered when classification
// terminates in the ambiguous bare-storefront sentinel.
var UsageSelectionOptions = []string{
	CatNeighborhood1,
	CatNeighborhood2,
	"근린생활시설",
}

// tier maps an area band to a category. below is the exclusive upper
// bound in m2; 0 means catch-all.
type tier struct {
	below    float64
	category string
}

// thresholdRule is one keyword group of the keyword+threshold stage.
// Tiers are evaluated in order; the first band containing the area wins.
type thresholdRule struct {
	keywords []string
	tiers    []tier
}

// thresholdRules is the fixed ordered list of the keyword+threshold stage.
// First matching group wins and the cascade never falls through to the
// broad-category stage once a group matched.
var thresholdRules = []thresholdRule{
	{keywords: []string{"소매점"},
		tiers: []tier{{1000, CatNeighborhood1}, {0, CatRetail}}},
	{keywords: []string{"휴게음식점", "커피숍", "제과점", "카페"},
		tiers: []tier{{300, CatNeighborhood1}, {0, CatNeighborhood2}}},
	{keywords: []string{"일반음식점"},
		tiers: []tier{{0, CatNeighborhood2}}},
	{keywords: []string{"사무소"},
		tiers: []tier{{30, CatNeighborhood1}, {500, CatNeighborhood2}, {0, CatBusiness}}},
	{keywords: []string{"학원", "교습소"},
		tiers: []tier{{500, CatNeighborhood2}, {0, CatEducation}}},
	{keywords: []string{"노래연습장", "노래방"},
		tiers: []tier{{0, CatNeighborhood2}}},
	{keywords: []string{"의원", "치과", "한의원"},
		tiers: []tier{{0, CatNeighborhood1}}},
	{keywords: []string{"이용원", "미용원", "세탁소", "미용실", "이발소"},
		tiers: []tier{{0, CatNeighborhood1}}},
	{keywords: []string{"체육도장", "헬스장"},
		tiers: []tier{{500, CatNeighborhood1}, {0, CatAthletic}}},
	{keywords: []string{"pc방", "게임장"},
		tiers: []tier{{500, CatNeighborhood2}, {0, CatAmusement}}},
}

// commercialKeywords gate the residence rules of the broad stage: a usage
// string naming any commercial use never classifies as a residence.
var commercialKeywords = []string{
	"점포", "소매점", "슈퍼마켓", "마트", "편의점", "상점", "매장",
	"사무소", "사무실", "휴게음식점", "일반음식점", "카페", "커피숍",
	"학원", "교습소", "노래연습장", "의원", "병원", "미용원", "이용원",
}

var detachedKeywords = []string{"단독", "단독주택", "다중", "다중주택", "다가구", "다가구주택", "공관"}
var multiUnitKeywords = []string{"아파트", "연립", "연립주택", "다세대", "다세대주택", "기숙사", "공동주택"}

// clause is one keyword+area predicate. minArea is inclusive, maxArea
// exclusive, 0 disables the bound. exclude keywords must be absent.
type clause struct {
	keywords []string
	minArea  float64
	maxArea  float64
	exclude  []string
}

// broadRule maps an OR of clauses to one category.
type broadRule struct {
	category string
	clauses  []clause
}

// broadRules is the explicitly ordered broad-category stage covering the
// statutory building-use taxonomy. First satisfied rule wins.
var broadRules = []broadRule{
	{CatNeighborhood1, []clause{
		{keywords: []string{"소매점", "슈퍼마켓", "마트", "편의점", "상점", "매장", "일용품"}, maxArea: 1000},
		{keywords: []string{"휴게음식점", "커피숍", "제과점", "카페"}, maxArea: 300},
		{keywords: []string{"이용원", "미용원", "목욕장", "세탁소", "미용실", "이발소"}},
		{keywords: []string{"의원", "치과의원", "한의원", "산후조리원"}},
		{keywords: []string{"탁구장", "체육도장"}, maxArea: 500},
		{keywords: []string{"공공업무시설"}, maxArea: 1000},
		{keywords: []string{"사무소", "중개사무소"}, maxArea: 30},
	}},
	{CatNeighborhood2, []clause{
		{keywords: []string{"공연장", "종교집회장"}, maxArea: 500},
		{keywords: []string{"자동차영업소"}, maxArea: 1000},
		{keywords: []string{"서점", "사진관", "동물병원"}},
		{keywords: []string{"pc방", "게임장"}, maxArea: 500},
		{keywords: []string{"휴게음식점", "커피숍", "제과점", "카페"}, minArea: 300},
		{keywords: []string{"일반음식점", "안마시술소", "노래연습장", "노래방"}},
		{keywords: []string{"단란주점"}, maxArea: 150},
		{keywords: []string{"학원", "교습소"}, maxArea: 500},
		{keywords: []string{"운동시설", "체육시설"}, maxArea: 500},
		{keywords: []string{"사무소", "중개사무소"}, minArea: 30, maxArea: 500},
		{keywords: []string{"고시원"}, maxArea: 500},
		{keywords: []string{"제조업소", "수리점"}, maxArea: 500},
	}},
	{CatCulture, []clause{
		{keywords: []string{"공연장", "집회장"}, minArea: 300},
		{keywords: []string{"관람장"}, minArea: 1000},
		{keywords: []string{"전시장", "동식물원"}},
	}},
	{CatReligious, []clause{
		{keywords: []string{"종교집회장", "봉안당"}, minArea: 300},
	}},
	{CatRetail, []clause{
		{keywords: []string{"농수산물도매시장", "대규모점포"}},
		{keywords: []string{"소매점", "슈퍼마켓", "마트", "편의점", "상점", "매장", "일용품"}, minArea: 1000},
		{keywords: []string{"오락실", "pc방", "게임장"}, minArea: 500},
	}},
	{CatTransport, []clause{
		{keywords: []string{"여객자동차터미널", "철도", "공항", "항만시설"}},
	}},
	{CatMedical, []clause{
		{keywords: []string{"병원", "종합병원", "치과병원", "한방병원", "격리병원", "전염병원", "정신병원", "요양소"}},
	}},
	{CatEducation, []clause{
		{keywords: []string{"학교", "교육원", "연구소", "도서관"}},
		{keywords: []string{"사설강습소"}, exclude: []string{"근생", "무도"}},
	}},
	{CatWelfare, []clause{
		{keywords: []string{"아동관련시설", "노인복지시설", "사회복지시설"}},
	}},
	{CatTraining, []clause{
		{keywords: []string{"청소년수련관", "수련원", "야영장", "유스호스텔"}},
	}},
	{CatAthletic, []clause{
		{keywords: []string{"탁구장", "체육도장", "볼링장"}, minArea: 500},
		{keywords: []string{"체육관", "운동장"}, minArea: 1000},
	}},
	{CatBusiness, []clause{
		{keywords: []string{"국가청사", "지자체청사", "오피스텔"}},
		{keywords: []string{"금융업소", "사무소"}, minArea: 500},
	}},
	{CatLodging, []clause{
		{keywords: []string{"호텔", "여관", "여인숙"}},
		{keywords: []string{"고시원"}, minArea: 500},
	}},
	{CatAmusement, []clause{
		{keywords: []string{"유흥음식점", "무도장"}},
		{keywords: []string{"단란주점"}, minArea: 150},
	}},
	{CatFactory, []clause{
		{keywords: []string{"제조", "가공", "수리"}, minArea: 500},
	}},
	{CatWarehouse, []clause{
		{keywords: []string{"일반창고", "냉장창고", "냉동창고", "물류터미널"}},
	}},
	{CatHazardous, []clause{
		{keywords: []string{"주유소", "석유판매소", "액화가스충전소", "위험물제조소"}},
	}},
	{CatAutomotive, []clause{
		{keywords: []string{"주차장", "세차장", "폐차장", "검사장", "정비공장", "정비학원"}},
	}},
	{CatAgricultural, []clause{
		{keywords: []string{"축사", "도축장", "작물재배사", "종묘배양시설", "온실"}},
	}},
	{CatWaste, []clause{
		{keywords: []string{"고물상", "폐기물재활용", "폐기물감량화"}},
	}},
	{CatCorrectional, []clause{
		{keywords: []string{"교정시설", "소년원", "국방시설", "군사시설"}},
	}},
	{CatBroadcast, []clause{
		{keywords: []string{"방송국", "촬영소", "통신용시설"}},
	}},
	{CatPower, []clause{
		{keywords: []string{"발전소"}},
	}},
	{CatFunerary, []clause{
		{keywords: []string{"화장시설", "봉안당"}, exclude: []string{"종교시설"}},
		{keywords: []string{"묘지부수건축물"}},
	}},
	{CatTourismRest, []clause{
		{keywords: []string{"야외음악당", "야외극장", "어린이회관", "휴게소"}},
	}},
	{CatFuneralHall, []clause{
		{keywords: []string{"장례식장"}},
	}},
}
