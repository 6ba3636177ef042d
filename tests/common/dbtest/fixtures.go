//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal surface fixtures need, satisfied by both the pool and
// a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// bcrypt of "password123", cost 12. Every fixture user shares it.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}
	return userID
}

func CreateTestHotel(t *testing.T, db DBLike, name string, taxAndFeeRate float64) uuid.UUID {
	t.Helper()

	hotelID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO hotels (id, name, tax_and_fee_rate) VALUES ($1, $2, $3)",
		hotelID, name, taxAndFeeRate)
	require.NoError(t, err)
	return hotelID
}

// RoomTypeFixture describes a room type row; zero values are replaced with a
// workable default policy.
type RoomTypeFixture struct {
	HotelID          uuid.UUID
	Name             string
	BasePrice        int64
	StandardOccupant int
	MaxChildren      int
	MaxOccupant      int
	MaxExtraBed      int
	SurchargeRates   string // jsonb literal
}

func CreateTestRoomType(t *testing.T, db DBLike, f RoomTypeFixture) uuid.UUID {
	t.Helper()

	if f.BasePrice == 0 {
		f.BasePrice = 1_000_000
	}
	if f.StandardOccupant == 0 {
		f.StandardOccupant = 2
	}
	if f.MaxOccupant == 0 {
		f.MaxOccupant = 3
	}
	if f.MaxChildren == 0 {
		f.MaxChildren = 1
	}
	if f.MaxExtraBed == 0 {
		f.MaxExtraBed = 1
	}
	if f.SurchargeRates == "" {
		f.SurchargeRates = `{"0-6": 0, "7-13": 0.2, "14-17": 0.2, "18": 1}`
	}

	roomTypeID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO room_types (id, hotel_id, name, base_price, standard_occupant, max_children, max_occupant, max_extra_bed, surcharge_rates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		roomTypeID, f.HotelID, f.Name, f.BasePrice, f.StandardOccupant, f.MaxChildren, f.MaxOccupant, f.MaxExtraBed, f.SurchargeRates)
	require.NoError(t, err)
	return roomTypeID
}

func CreateTestRoom(t *testing.T, db DBLike, roomTypeID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO rooms (id, room_type_id, name) VALUES ($1, $2, $3)",
		roomID, roomTypeID, name)
	require.NoError(t, err)
	return roomID
}

func CreateTestRooms(t *testing.T, db DBLike, roomTypeID uuid.UUID, count int) []uuid.UUID {
	t.Helper()

	ids := make([]uuid.UUID, count)
	for i := range ids {
		ids[i] = CreateTestRoom(t, db, roomTypeID, fmt.Sprintf("room-%d", i+1))
	}
	return ids
}

func CreateTestPromotion(t *testing.T, db DBLike, roomTypeID uuid.UUID, code, discountType string, value float64, start, end time.Time, active bool) uuid.UUID {
	t.Helper()

	promotionID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO promotions (id, room_type_id, code, discount_type, discount_value, start_date, end_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		promotionID, roomTypeID, code, discountType, value, start, end, active)
	require.NoError(t, err)
	return promotionID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table so each subtest starts from a clean slate.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})

	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
