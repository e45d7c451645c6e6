package bootstrap

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is the whole application minus the HTTP server. Tests compose the
// pieces themselves to swap the database and config.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	InfraModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	EventsModule,
)

// InfraModule holds the external connections: Postgres and Redis.
var InfraModule = fx.Options(
	DBModule,
	CacheModule,
)
