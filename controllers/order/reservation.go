package orderControllers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// reserveStock validates and decrements stock for every line item, in the
// order submitted. It must run inside a transaction: any failure is returned
// to the caller, the transaction rolls back, and no decrement stays visible
// (all-or-nothing).
//
// Each decrement is a conditional single-statement update
// (stock = stock - n WHERE stock >= n), so concurrent checkouts racing on the
// same variant cannot drive stock negative: the loser's update matches zero
// rows and its whole placement is rejected.
func reserveStock(tx *gorm.DB, items []OrderItemInput) error {
	for _, item := range items {
		var product models.Product
		if err := tx.Preload("Variants").First(&product, item.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: item.Product}
			}
			return err
		}

		if len(product.Variants) > 0 && item.Size != "" {
			if err := reserveVariant(tx, &product, item); err != nil {
				return err
			}
		} else {
			if err := reserveFlat(tx, &product, item); err != nil {
				return err
			}
		}

		res := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("analytics_purchases", gorm.Expr("analytics_purchases + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

func reserveVariant(tx *gorm.DB, product *models.Product, item OrderItemInput) error {
	var variant *models.Variant
	for i := range product.Variants {
		if product.Variants[i].Size == item.Size {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		sizes := make([]string, 0, len(product.Variants))
		for _, v := range product.Variants {
			sizes = append(sizes, v.Size)
		}
		return &InvalidSizeError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   item.Size,
			Available:   sizes,
		}
	}

	res := tx.Model(&models.Variant{}).
		Where("id = ? AND stock >= ?", variant.ID, item.Quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current models.Variant
		if err := tx.First(&current, variant.ID).Error; err != nil {
			return err
		}
		return &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        item.Size,
			Requested:   item.Quantity,
			Available:   current.Stock,
		}
	}

	// Best-effort mirror of the legacy flat counter. Skipped silently when it
	// would underflow; variants stay the source of truth for sized stock.
	return tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error
}

func reserveFlat(tx *gorm.DB, product *models.Product, item OrderItemInput) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current models.Product
		if err := tx.First(&current, product.ID).Error; err != nil {
			return err
		}
		return &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   item.Quantity,
			Available:   current.StockQuantity,
		}
	}
	return nil
}
