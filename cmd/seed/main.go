// Command seed loads demo data: two service centers, three catalog services
// and one agent per center. Running it again leaves existing rows alone.
package main

import (
	"context"
	"errors"
	"os"

	"roadside/cmd"
	postgres_adapter "roadside/internal/adapters/out/postgres"
	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/telemetry"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type seedCenter struct {
	name, phone, address string
	lat, lng             float64
	agentName            string
}

type seedService struct {
	name, description, category string
	price                       int64
}

var centers = []seedCenter{
	{"Dhaka Bikes Service", "+880 1700-000001", "Gulshan 1, Dhaka", 23.7925, 90.4078, "Rahim Uddin"},
	{"Chattogram Riders Hub", "+880 1800-000002", "GEC Circle, Chattogram", 22.3595, 91.8212, "Karim Hossain"},
}

var catalogServices = []seedService{
	{"Flat Tyre Fix", "Puncture repair or tube replacement at the roadside", "repair", 199},
	{"Battery Jumpstart", "Jumpstart a dead battery and check the charging system", "electrical", 299},
	{"Oil Top-up", "Engine oil top-up with a quick leak check", "maintenance", 149},
}

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := telemetry.NewLogger(os.Stdout, configs.LogLevel).With("component", "seed")
	ctx := context.Background()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres_adapter.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	factory := postgres_adapter.NewGormUnitOfWorkFactory(gormDB)
	app := cmd.NewCompositionRoot(configs, gormDB, telemetry.NewMetrics(nil), logger)
	registerAgent := app.CreateRegisterAgentCommandHandler()

	for _, s := range catalogServices {
		created, seedErr := seedCatalogService(ctx, factory, s)
		if seedErr != nil {
			log.Fatalf("Error seeding service %q: %v", s.name, seedErr)
		}
		logger.Info("service", "name", s.name, "created", created)
	}

	for _, c := range centers {
		id, created, seedErr := seedServiceCenter(ctx, factory, c)
		if seedErr != nil {
			log.Fatalf("Error seeding center %q: %v", c.name, seedErr)
		}
		logger.Info("center", "name", c.name, "created", created)
		if !created {
			continue
		}

		agentCmd, cmdErr := commands.NewRegisterAgentCommand(
			"seed:"+c.agentName, c.agentName, c.phone, id.String(), nil,
		)
		if cmdErr != nil {
			log.Fatalf("Error building agent %q: %v", c.agentName, cmdErr)
		}
		if seedErr = registerAgent.Handle(ctx, agentCmd); seedErr != nil {
			log.Fatalf("Error registering agent %q: %v", c.agentName, seedErr)
		}
		logger.Info("agent", "name", c.agentName, "center", c.name)
	}
}

// stableID derives the same id for the same seed entry on every run.
func stableID(kind, name string) kernel.UUID {
	id, err := kernel.UUIDFromGoogle(uuid.NewSHA1(uuid.NameSpaceURL, []byte("roadside:"+kind+":"+name)))
	if err != nil {
		panic(err)
	}
	return id
}

func seedServiceCenter(ctx context.Context, factory ports.UnitOfWorkFactory, s seedCenter) (kernel.UUID, bool, error) {
	id := stableID("center", s.name)

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return id, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CenterRepository()
	_, err := repo.Get(ctx, id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return id, false, err
	}

	location, err := kernel.NewLocation(s.lat, s.lng)
	if err != nil {
		return id, false, err
	}
	c, err := center.NewCenter(id, s.name, s.phone, s.address, location)
	if err != nil {
		return id, false, err
	}
	if err = repo.Add(ctx, c); err != nil {
		return id, false, err
	}

	return id, true, uow.Commit(ctx)
}

func seedCatalogService(ctx context.Context, factory ports.UnitOfWorkFactory, s seedService) (bool, error) {
	id := stableID("service", s.name)

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	_, err := repo.Get(ctx, id)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}

	service, err := catalog.NewService(id, s.name, s.description, s.category, decimal.NewFromInt(s.price))
	if err != nil {
		return false, err
	}
	if err = repo.Add(ctx, service); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}
