package models

// AllModels returns all models in dependency order for migration
func AllModels() []interface{} {
	return []interface{}{
		&Staff{},
		&Customer{},
		&Material{},
		&Product{},
		&Prescription{},
		&Transaction{},
		&SaleItem{},
		&Payment{},
		&RepairTransaction{},
	}
}
