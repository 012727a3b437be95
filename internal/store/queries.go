package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// User queries.
const (
	queryCreateUser = `
		INSERT INTO users (email, name, password_hash, created_at, updated_at)
		VALUES (@email, @name, @password_hash, now(), now())
		RETURNING id, created_at, updated_at`

	queryGetUser = `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	queryGetUserByEmail = `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	queryListUsers = `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at
		LIMIT $1 OFFSET $2`

	queryCountUsers = `
		SELECT count(*) FROM users`

	queryUpdateUser = `
		UPDATE users SET
			email = @email,
			name = @name,
			password_hash = @password_hash,
			updated_at = now()
		WHERE id = @id
		RETURNING updated_at`

	queryDeleteUser = `
		DELETE FROM users WHERE id = $1`
)

// Setting queries.
const (
	queryEnsureSetting = `
		INSERT INTO settings (user_id, created_at, updated_at)
		VALUES ($1, now(), now())
		ON CONFLICT (user_id) DO NOTHING`

	queryGetSetting = `
		SELECT user_id,
			COALESCE(yahoo_client_id, ''), COALESCE(yahoo_client_secret, ''),
			COALESCE(ebay_client_id, ''), COALESCE(ebay_dev_id, ''),
			COALESCE(ebay_client_secret, ''), COALESCE(ebay_auth_token, ''),
			created_at, updated_at
		FROM settings
		WHERE user_id = $1`

	queryUpdateSetting = `
		UPDATE settings SET
			yahoo_client_id = @yahoo_client_id,
			yahoo_client_secret = @yahoo_client_secret,
			ebay_client_id = @ebay_client_id,
			ebay_dev_id = @ebay_dev_id,
			ebay_client_secret = @ebay_client_secret,
			ebay_auth_token = @ebay_auth_token,
			updated_at = now()
		WHERE user_id = @user_id
		RETURNING updated_at`
)

// Shipping reference queries.
const (
	queryGetService = `
		SELECT id, name FROM shipping_services WHERE id = $1`

	queryListServices = `
		SELECT id, name FROM shipping_services ORDER BY id`

	queryGetCountry = `
		SELECT id, country_code, country_name, country_name_jp, zone, service_id
		FROM countries
		WHERE service_id = $1 AND country_code = $2`

	// The bracket is the lightest one whose upper bound covers the
	// requested weight.
	queryGetShippingRate = `
		SELECT id, zone, weight_grams, basic_price, service_id
		FROM shipping_rates
		WHERE service_id = $1 AND zone = $2 AND weight_grams >= $3
		ORDER BY weight_grams
		LIMIT 1`

	queryListActiveSurcharges = `
		SELECT id, service_id, surcharge_type, rate, fixed_amount, start_date, end_date
		FROM shipping_surcharges
		WHERE service_id = $1
			AND start_date <= $2
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY surcharge_type`
)
