package productservice

// Product модель товара из ProductService
type Product struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// OwnedBy сообщает, принадлежит ли товар указанному селлеру
func (p *Product) OwnedBy(sellerID int64) bool {
	return p.SellerID == sellerID
}

// ErrorResponse модель ошибки от ProductService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
