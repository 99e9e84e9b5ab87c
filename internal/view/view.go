package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/fjod/cart-store/internal/domain"
)

//go:embed templates/cart.html
var templateFS embed.FS

var cartTemplate = template.Must(template.ParseFS(templateFS, "templates/cart.html"))

// Row is one rendered cart line.
type Row struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Image        string  `json:"image"`
	UnitPrice    float64 `json:"price"`
	Price        string  `json:"price_formatted"`
	Amount       int     `json:"amount"`
	Subtotal     string  `json:"subtotal"`
	CanDecrement bool    `json:"can_decrement"`
}

// Page is the cart review view: one row per line plus the grand total.
type Page struct {
	Rows   []Row  `json:"items"`
	Total  string `json:"total"`
	Empty  bool   `json:"empty"`
	Notice string `json:"notice,omitempty"`
}

func Build(cart domain.Cart, f Formatter) Page {
	rows := make([]Row, len(cart))
	for i, line := range cart {
		rows[i] = Row{
			ID:           line.ID,
			Title:        line.Title,
			Image:        line.Image,
			UnitPrice:    line.Price,
			Price:        f.FormatFloat(line.Price),
			Amount:       line.Amount,
			Subtotal:     f.Format(line.Subtotal()),
			CanDecrement: line.Amount > 1,
		}
	}

	return Page{
		Rows:  rows,
		Total: f.Format(cart.Total()),
		Empty: len(cart) == 0,
	}
}

func Render(w io.Writer, page Page) error {
	return cartTemplate.ExecuteTemplate(w, "cart.html", page)
}
