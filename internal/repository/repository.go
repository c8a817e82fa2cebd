package repository

import (
	"errors"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store wraps the hosted relational backend. Constructed once at process
// start and safe for concurrent use.
type Store struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate sets up the schema and installs the atomic stock-check procedure.
// Idempotent.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.CustomerProfile{},
	); err != nil {
		return err
	}
	return s.db.Exec(placeOrderProcedure).Error
}

// place_order_with_stock_check validates and decrements stock and inserts
// the order plus its items as one unit. Raises on insufficient stock, which
// surfaces to callers as ErrInsufficientStock.
const placeOrderProcedure = `
CREATE OR REPLACE FUNCTION place_order_with_stock_check(
    p_customer_name  text,
    p_phone          text,
    p_address        text,
    p_note           text,
    p_total_amount   numeric,
    p_payment_method text,
    p_payment_number text,
    p_status         text,
    p_items          jsonb
) RETURNS bigint AS $$
DECLARE
    v_order_id bigint;
    v_item     jsonb;
    v_stock    int;
BEGIN
    FOR v_item IN SELECT * FROM jsonb_array_elements(p_items) LOOP
        SELECT stock INTO v_stock FROM products
            WHERE id = (v_item->>'product_id')::bigint FOR UPDATE;
        IF v_stock IS NULL OR v_stock < (v_item->>'quantity')::int THEN
            RAISE EXCEPTION 'insufficient stock for product %', v_item->>'product_id';
        END IF;
        UPDATE products SET stock = stock - (v_item->>'quantity')::int
            WHERE id = (v_item->>'product_id')::bigint;
    END LOOP;

    INSERT INTO orders (customer_name, phone, address, note, total_amount,
                        payment_method, payment_number, status, created_at, updated_at)
        VALUES (p_customer_name, p_phone, p_address, p_note, p_total_amount,
                p_payment_method, p_payment_number, p_status, now(), now())
        RETURNING id INTO v_order_id;

    INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
        SELECT v_order_id,
               (i->>'product_id')::bigint,
               i->>'product_name',
               (i->>'quantity')::int,
               (i->>'price')::numeric
        FROM jsonb_array_elements(p_items) AS i;

    RETURN v_order_id;
END;
$$ LANGUAGE plpgsql;
`

func isStockError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "insufficient stock")
}
