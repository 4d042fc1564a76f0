package dto

// RecordSaleRequest entrada para registrar una venta.
// ProductMatch se compara por subcadena del nombre (sin mayúsculas); si ProductID
// viene informado se usa el ID y se ignora ProductMatch.
type RecordSaleRequest struct {
	ProductMatch string `json:"product_match"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customer_name"`
}
