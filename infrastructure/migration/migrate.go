// Package migration upgrades older persisted shapes before any repository
// read validates them, and stamps the schema version the process writes.
package migration

import (
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/utils"
)

// Run applies pending upgrades and stamps appVersion. Safe to run on every
// startup: an already-current store is a no-op.
func Run(store *storage.Adapter, version string) {
	var stored string
	store.Get(storage.KeyAppVersion, &stored)

	if stored != version {
		upgraded := upgradeSales(store)
		logrus.WithFields(logrus.Fields{
			"from":           stored,
			"to":             version,
			"sales_upgraded": upgraded,
		}).Info("storage schema migrated")
	}

	if !store.Set(storage.KeyAppVersion, version) {
		logrus.Warn("could not stamp appVersion")
	}
}

// upgradeSales backfills the subtotal on v0 sale records, which only carried
// a total and tax components. Without the backfill those records would fail
// the required-subtotal rule and silently vanish from reads.
func upgradeSales(store *storage.Adapter) int {
	var sales []map[string]interface{}
	if !store.Get(storage.KeySales, &sales) {
		return 0
	}

	upgraded := 0
	for _, sale := range sales {
		if _, ok := sale["subtotal"]; ok {
			continue
		}

		total := number(sale["totalAmount"])
		taxes := number(sale["vatAmount"]) + number(sale["nhilAmount"]) + number(sale["getfundAmount"])
		subtotal := utils.RoundWithTwoDecimalPlace(total - taxes)
		if subtotal < 0 {
			subtotal = 0
		}
		sale["subtotal"] = subtotal
		upgraded++
	}

	if upgraded > 0 && !store.Set(storage.KeySales, sales) {
		logrus.Warn("sales migration not persisted")
		return 0
	}
	return upgraded
}

func number(value interface{}) float64 {
	f, _ := value.(float64)
	return f
}
