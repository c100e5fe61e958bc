package database

// Reservation queries
const (
	InsertReservationSQL = `
		INSERT INTO reservations (id, restaurant_id, table_number, time, guest_count, status, special_requests, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	GetReservationByIDSQL = `
		SELECT id, restaurant_id, table_number, time, guest_count, status, special_requests, created_at
		FROM reservations WHERE id = $1`

	UpdateReservationStatusSQL = `
		UPDATE reservations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`

	ListReservationsByRestaurantSQL = `
		SELECT id, restaurant_id, table_number, time, guest_count, status, special_requests, created_at
		FROM reservations
		WHERE restaurant_id = $1
		ORDER BY time ASC`

	ListReservationsByTableSQL = `
		SELECT id, restaurant_id, table_number, time, guest_count, status, special_requests, created_at
		FROM reservations
		WHERE restaurant_id = $1 AND table_number = $2
		ORDER BY time ASC`
)
