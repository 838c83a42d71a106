// internal/addrcode/tables.go
package addrcode

// Administrative code tables for the regions the service operates in,
// keyed by the names agents actually write. Codes follow the national
// administrative district numbering.
var sigunguCodes = map[string]string{
	"대구 중구":   "27110",
	"대구 동구":   "27140",
	"대구 서구":   "27170",
	"대구 남구":   "27200",
	"대구 북구":   "27230",
	// Bare district names default to the Daegu districts; listings in the
	// service's home region usually omit the city.
	"중구": "27110",
	"동구": "27140",
	"서구": "27170",
	"남구": "27200",
	"북구": "27230",
	"수성구":     "27260",
	"달서구":     "27290",
	"달성군":     "27710",
	"서울 중구":   "11140",
	"종로구":     "11110",
	"강남구":     "11680",
	"서초구":     "11650",
	"송파구":     "11710",
	"마포구":     "11440",
	"영등포구":    "11560",
}

var bjdongCodes = map[string]map[string]string{
	// 대구 중구
	"27110": {
		"동인동": "10100", "삼덕동": "10400", "봉산동": "11200",
		"대봉동": "16200", "남산동": "16100", "동성로": "11500",
	},
	// 대구 동구
	"27140": {
		"신암동": "10100", "신천동": "10600", "효목동": "10700",
		"방촌동": "11700", "율하동": "12100",
	},
	// 대구 서구
	"27170": {
		"내당동": "10100", "비산동": "10200", "평리동": "10300",
	},
	// 대구 남구
	"27200": {
		"이천동": "10100", "봉덕동": "10200", "대명동": "10300",
	},
	// 대구 북구
	"27230": {
		"칠성동": "10500", "침산동": "10900", "산격동": "11000",
		"복현동": "11200", "동천동": "11800",
	},
	// 수성구
	"27260": {
		"범어동": "10300", "만촌동": "10400", "수성동": "10100",
		"황금동": "10600", "중동": "10800", "상동": "10900",
		"지산동": "11100", "범물동": "11200", "시지동": "11400",
	},
	// 달서구
	"27290": {
		"성당동": "10100", "두류동": "10200", "감삼동": "10400",
		"죽전동": "10500", "용산동": "10600", "상인동": "11200",
		"진천동": "11400", "월성동": "11500",
	},
	// 달성군
	"27710": {
		"화원읍": "25000", "다사읍": "25600", "현풍읍": "25300",
	},
	// 서울 중구
	"11140": {
		"을지로": "10300", "명동": "12400", "신당동": "17100",
	},
	// 종로구
	"11110": {
		"청운동": "10100", "삼청동": "11500", "인사동": "14600",
	},
	// 강남구
	"11680": {
		"역삼동": "10100", "개포동": "10300", "청담동": "10400",
		"삼성동": "10500", "대치동": "10600", "신사동": "10700",
		"논현동": "10800", "압구정동": "11000", "세곡동": "11100",
		"자곡동": "11200", "수서동": "11500", "도곡동": "11800",
	},
	// 서초구
	"11650": {
		"방배동": "10100", "양재동": "10200", "우면동": "10300",
		"잠원동": "10600", "반포동": "10700", "서초동": "10800",
		"내곡동": "10900",
	},
	// 송파구
	"11710": {
		"잠실동": "10100", "신천동": "10200", "풍납동": "10300",
		"송파동": "10400", "석촌동": "10500", "삼전동": "10600",
		"가락동": "10700", "문정동": "10800", "방이동": "11100",
	},
	// 마포구
	"11440": {
		"공덕동": "10100", "아현동": "10200", "도화동": "10500",
		"합정동": "11800", "망원동": "11900", "연남동": "12200",
		"성산동": "12300", "상암동": "12500", "서교동": "11500",
	},
	// 영등포구
	"11560": {
		"영등포동": "10100", "여의도동": "11000", "당산동": "11500",
		"문래동": "12100", "양평동": "12500",
	},
}
