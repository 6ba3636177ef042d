package components

import (
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/clock"
	"hotel-booking-api/internal/pkg/config"
	"hotel-booking-api/internal/usecase/commands"
	"hotel-booking-api/internal/usecase/queries"
	"hotel-booking-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewSystemClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewTokenValidator,
		commands.NewPromotionCommands,
		newBookingCommands,
	),
)

func newBookingCommands(
	uow shared.UnitOfWork,
	dbtx db.DBTX,
	bookings shared.BookingRepository,
	rooms shared.RoomRepository,
	roomTypes shared.RoomTypeReadStore,
	roomStates shared.RoomReadStore,
	promotions shared.PromotionReadStore,
	idempotency shared.IdempotencyRepository,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	cfg config.Config,
) commands.BookingCommands {
	return commands.NewBookingCommands(
		uow, dbtx, bookings, rooms, roomTypes, roomStates,
		promotions, idempotency, bookingQueries, clk,
		cfg.Booking.HoldTTL,
	)
}
