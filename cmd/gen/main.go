package main

import (
	"depot/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.BrandModel{},
		model.ProductModel{},
		model.RetailerModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.SequenceModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
