package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (number, customer_name, customer_phone, customer_email, fulfillment_type,
			delivery_address, payment_method, special_instructions, subtotal, tax, delivery_fee, total, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, item_id, name, quantity, unit_price, options)
		VALUES ($1, $2, $3, $4, $5, $6)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE number = $2`

	// The advance queries guard on the expected current status so a
	// concurrent cancellation is never overwritten.
	AdvanceOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE number = $2 AND status = $3`

	AdvanceOrderDeliveredSQL = `
		UPDATE orders SET status = $1, delivered_at = NOW(), updated_at = NOW()
		WHERE number = $2 AND status = $3`

	UpdateOrderDriverSQL = `
		UPDATE orders SET driver_name = $1, driver_vehicle = $2, driver_phone = $3, updated_at = NOW()
		WHERE number = $4`

	GetOrderByNumberSQL = `
		SELECT id, number, customer_name, customer_phone, customer_email, fulfillment_type,
			   delivery_address, payment_method, special_instructions,
			   subtotal, tax, delivery_fee, total, priority, status,
			   driver_name, driver_vehicle, driver_phone,
			   created_at, updated_at, delivered_at
		FROM orders WHERE number = $1`

	GetOrderStatusSQL = `
		SELECT status FROM orders WHERE number = $1`

	GetOrdersByCustomerSQL = `
		SELECT o.number, o.fulfillment_type, o.total, o.status, o.created_at,
			   COALESCE(json_agg(json_build_object('name', i.name, 'quantity', i.quantity) ORDER BY i.id)
					FILTER (WHERE i.id IS NOT NULL), '[]')
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.customer_email = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = (SELECT id FROM orders WHERE number = $1)
		ORDER BY changed_at ASC`

	GetNextOrderSequenceSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'TMP_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`
)

// Loyalty queries
const (
	InsertLoyaltyTransactionSQL = `
		INSERT INTO loyalty_transactions (id, customer_id, type, points, description, order_number)
		VALUES ($1, $2, $3, $4, $5, $6)`

	GetLoyaltyTransactionsSQL = `
		SELECT id, type, points, description, order_number, created_at
		FROM loyalty_transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC`
)
