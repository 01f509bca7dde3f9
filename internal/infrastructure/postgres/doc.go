// Package postgres contiene los adaptadores de persistencia sobre PostgreSQL
// (pgx/v5). El esquema se administra fuera de la app; las tablas esperadas:
//
//	users            (id PK, email UNIQUE, password_hash, display_name, status,
//	                  created_at, updated_at)
//	items            (id PK, user_id, channel, product_name,
//	                  quantity_total NULL, quantity_available NULL,
//	                  purchase_price NUMERIC, point NUMERIC, purchase_date,
//	                  purchase_location, status, sale_price NUMERIC NULL,
//	                  sale_location NULL, sale_date NULL, created_at, updated_at)
//	sale_batches     (id PK, user_id, method, buyer, campaign,
//	                  shipping_cost NUMERIC, status, item_count,
//	                  confirmed_at NULL, created_at, updated_at)
//	sale_batch_items (id PK, batch_id, user_id, item_id, product_name,
//	                  quantity, purchase_price NUMERIC, point NUMERIC, status,
//	                  final_price NUMERIC NULL, confirmed_at NULL,
//	                  created_at, updated_at)
//
// Las columnas de cantidad de items admiten NULL por datos históricos; la
// normalización (fallback entre sí y luego 1) se hace en el SELECT, nunca en
// los consumidores.
package postgres
