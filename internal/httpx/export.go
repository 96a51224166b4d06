package httpx

import (
	"io"
	"net/http"

	"github.com/ariefcatur/unicor-shoes/internal/money"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Nombre", "Categoría", "Marca", "Precio", "Precio (COP)", "Stock", "Activo", "Imagen"}

// WriteProductsXLSX writes one sheet listing every product, active or not.
func WriteProductsXLSX(out io.Writer, products []shop.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}
	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Brand)
		row.AddCell().SetValue(p.Price.String())
		row.AddCell().SetValue(money.FormatPrice(p.Price))
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Active)
		row.AddCell().SetValue(p.ImagePath)
	}
	return file.Write(out)
}

func (h *Handler) exportProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := WriteProductsXLSX(w, h.Services.Products.AllAdmin(r.Context())); err != nil {
		h.Log.WithError(err).Error("export products")
	}
}
