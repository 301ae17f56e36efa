package mandala

import "math"

// zodiacGlyphs holds the 12 sign glyphs for the 30°-wide tropical bands,
// Aries first.
var zodiacGlyphs = [12]string{
	"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓",
}

// Zodiac returns the sign glyph for an ecliptic longitude.
func Zodiac(longitude float64) string {
	lon := math.Mod(longitude, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return zodiacGlyphs[int(lon/30.0)%12]
}

// gateSigns are the hexagram names echoed with each reading, keyed by gate.
var gateSigns = map[int]string{
	1: "創始", 2: "方向", 3: "秩序", 4: "青年", 5: "等待", 6: "衝突", 7: "軍隊", 8: "團結",
	9: "小畜", 10: "履", 11: "泰", 12: "否", 13: "同人", 14: "大有", 15: "謙", 16: "豫",
	17: "隨", 18: "蠱", 19: "臨", 20: "觀", 21: "噬嗑", 22: "賁", 23: "剝", 24: "復",
	25: "無妄", 26: "大畜", 27: "頤", 28: "大過", 29: "坎", 30: "離", 31: "咸", 32: "恆",
	33: "遯", 34: "大壯", 35: "晉", 36: "明夷", 37: "家人", 38: "睽", 39: "蹇", 40: "解",
	41: "損", 42: "益", 43: "夬", 44: "姤", 45: "萃", 46: "升", 47: "困", 48: "井",
	49: "革", 50: "鼎", 51: "震", 52: "艮", 53: "漸", 54: "歸妹", 55: "豐", 56: "旅",
	57: "巽", 58: "兌", 59: "渙", 60: "節", 61: "中孚", 62: "小過", 63: "既濟", 64: "未濟",
}

// GateSign returns the hexagram name for a gate, empty for out-of-range.
func GateSign(gate int) string {
	return gateSigns[gate]
}
