package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ProductFromRow converts a raw store row into a Product
// unknown columns are ignored and missing ones stay zero
func ProductFromRow(row map[string]any) Product {
	p := Product{
		ID:          str(row["id"]),
		Name:        str(row["name"]),
		Category:    str(row["category"]),
		ProductType: str(row["product_type"]),
		Brand:       str(row["brand"]),
		GPUVendor:   str(row["gpu_vendor"]),
		CPUVendor:   str(row["cpu_vendor"]),
		Color:       str(row["color"]),
		Genre:       str(row["genre"]),
		Format:      str(row["format"]),
	}
	if v, ok := Number(row["price_cents"]); ok {
		p.PriceCents = int64(math.Round(v))
	}
	p.Specs = specs(row["specs"])
	return p
}

// Number reads a numeric attribute of any driver representation
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil
	case fmt.Stringer:
		f, err := strconv.ParseFloat(x.String(), 64)
		return f, err == nil
	}
	return 0, false
}

func str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func specs(v any) map[string]any {
	switch x := v.(type) {
	case map[string]any:
		return x
	case []byte:
		var m map[string]any
		if json.Unmarshal(x, &m) == nil {
			return m
		}
	case string:
		var m map[string]any
		if json.Unmarshal([]byte(x), &m) == nil {
			return m
		}
	}
	return nil
}
