package components

import (
	repo_impl "hotel-booking-api/internal/infra/repository"
	"hotel-booking-api/internal/infra/uow"
	"hotel-booking-api/internal/usecase/queries"
	"hotel-booking-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			repo_impl.NewRoomTypeReadStore,
			fx.As(new(shared.RoomTypeReadStore)),
		),
		fx.Annotate(
			repo_impl.NewRoomReadStore,
			fx.As(new(shared.RoomReadStore)),
		),
		fx.Annotate(
			repo_impl.NewPromotionReadStore,
			fx.As(new(shared.PromotionReadStore)),
		),
		fx.Annotate(
			repo_impl.NewPromotionRepository,
			fx.As(new(shared.PromotionRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(shared.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(shared.RoomRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			repo_impl.NewUserReadStore,
			fx.As(new(shared.UserReadStore)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
		),
	),
)
