package inventory

import (
	"crypto/rand"
	"math/big"
)

const skuAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateSKU devuelve "SKU" + 8 caracteres de [0-9A-Z].
func generateSKU() string {
	buf := make([]byte, 3, 11)
	copy(buf, "SKU")
	max := big.NewInt(int64(len(skuAlphabet)))
	for i := 0; i < 8; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf = append(buf, skuAlphabet[i])
			continue
		}
		buf = append(buf, skuAlphabet[n.Int64()])
	}
	return string(buf)
}
