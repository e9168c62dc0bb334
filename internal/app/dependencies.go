package app

import (
	"database/sql"

	"github.com/rosterly/rosterly/internal/config"
	"github.com/rosterly/rosterly/internal/notification"
	"github.com/rosterly/rosterly/internal/utils"
	"github.com/rosterly/rosterly/pkg/board"
	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/resource"
	"github.com/rosterly/rosterly/pkg/stats"
	"github.com/rosterly/rosterly/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Notifications *notification.Dispatcher

	UserService user.Service
	UserHandler *user.Handler

	ResourceRepo    resource.Repository
	ResourceService *resource.Service
	ResourceHandler *resource.Handler

	CalendarRepository *calendar.RepositoryImpl
	CalendarService    *calendar.Service
	CalendarHandler    *calendar.Handler

	BoardViews       *board.Views
	BoardRescheduler *board.Rescheduler
	BoardHandler     *board.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.Notifications = notification.NewDispatcher()
	deps.Notifications.Subscribe(notification.LogSink)

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ResourceRepo = resource.NewRepository(db)
	deps.ResourceService = resource.NewService(deps.ResourceRepo)
	deps.ResourceHandler = resource.NewHandler(deps.ResourceService)

	deps.CalendarRepository = calendar.NewRepository(db)
	deps.CalendarService = calendar.NewService(deps.CalendarRepository)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService, deps.Clock)

	deps.BoardViews = board.NewViews()
	deps.BoardRescheduler = board.NewRescheduler(deps.CalendarService, deps.BoardViews, deps.Notifications)
	deps.BoardHandler = board.NewHandler(deps.BoardRescheduler)

	deps.StatsService = stats.NewStatsService(deps.CalendarService, deps.ResourceService)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	return deps
}
