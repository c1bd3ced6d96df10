package utils

import (
	"fmt"
	"math"
)

// FormatPrice 把最小货币单位的整数价格格式化成两位小数的主单位字符串
// 1050 -> "10.50"。纯整数运算，不受 locale 影响
func FormatPrice(minorUnits int64) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	return fmt.Sprintf("%s%d.%02d", sign, minorUnits/100, minorUnits%100)
}

// PriceToMinorUnits 主单位浮点价格转最小单位整数（四舍五入）
// 仅用于接收人工输入的价格，存储和计算一律走整数
func PriceToMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}
