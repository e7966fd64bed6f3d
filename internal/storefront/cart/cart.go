package cart

// ============================================================
// Cart State Model
// ============================================================

// LineItem — строка корзины, ключ уникальности (ProductID, Size).
type LineItem struct {
	ProductID string  `json:"product_id"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// Totals — производные суммы, пересчитываются на каждый вызов.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Cart держит упорядоченный список строк одной сессии.
type Cart struct {
	lines []LineItem
}

// AddItem добавляет строку; существующий ключ увеличивает количество.
func (c *Cart) AddItem(item LineItem, qty int) {
	for i := range c.lines {
		if c.lines[i].ProductID == item.ProductID && c.lines[i].Size == item.Size {
			c.lines[i].Quantity += qty
			return
		}
	}
	item.Quantity = qty
	c.lines = append(c.lines, item)
}

// SetQuantity применяет дельту; количество не опускается ниже 1,
// строка никогда не удаляется этим путём.
func (c *Cart) SetQuantity(productID, size string, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Size == size {
			q := c.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.lines[i].Quantity = q
			return
		}
	}
}

// RemoveItem удаляет строку; отсутствие ключа — no-op,
// порядок остальных строк сохраняется.
func (c *Cart) RemoveItem(productID, size string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Size == size {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear опустошает корзину (после успешного оформления заказа).
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines возвращает копию строк в порядке добавления.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals пересчитывает суммы от текущего списка; ничего не кэшируется.
func (c *Cart) Totals(shippingFee float64) Totals {
	var subtotal float64
	for _, line := range c.lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Total:    subtotal + shippingFee,
	}
}
