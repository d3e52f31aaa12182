package orderControllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// ExportOrdersToExcel streams the full order ledger as an .xlsx download for
// the admin back-office.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "UserID", "Items", "PaymentMethod", "PaymentStatus", "OrderStatus",
			"Subtotal", "ShippingCost", "Total", "City", "State", "Pincode", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.UserID)

			var items []string
			for _, item := range o.Items {
				label := fmt.Sprintf("%s x%d", item.Name, item.Quantity)
				if item.Size != "" {
					label += " (" + item.Size + ")"
				}
				items = append(items, label)
			}
			row.AddCell().SetValue(strings.Join(items, "; "))

			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(string(o.OrderStatus))
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.ShippingCost)
			row.AddCell().SetValue(o.Total)
			row.AddCell().SetValue(o.ShippingAddress.City)
			row.AddCell().SetValue(o.ShippingAddress.State)
			row.AddCell().SetValue(o.ShippingAddress.Pincode)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to write Excel file"})
			return
		}
	}
}
