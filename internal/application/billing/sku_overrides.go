package billing

import (
	_ "embed"
	"encoding/json"
)

// Corecții punctuale de cod de produs: SKU-uri istorice din marketplace
// mapate pe codurile reale din gestiunea SmartBill.
//
//go:embed sku_overrides.json
var skuOverridesJSON []byte

var skuOverrides = mustLoadSKUOverrides()

func mustLoadSKUOverrides() map[string]string {
	table := make(map[string]string)
	if err := json.Unmarshal(skuOverridesJSON, &table); err != nil {
		panic("sku_overrides.json invalid: " + err.Error())
	}
	return table
}

// overrideProductCode întoarce codul corectat pentru SKU-ul dat,
// sau șirul gol dacă nu există o corecție.
func overrideProductCode(sku string) string {
	return skuOverrides[sku]
}
