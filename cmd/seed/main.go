// seed aplica migraciones, crea el superadmin y carga datos de ejemplo.
//
// Uso: go run ./cmd/seed -email admin@hospital.local -password 'cambiar-esto' [-sample]
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medinventory-api/internal/application/auth"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/bootstrap"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medinventory-api/pkg/config"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

func main() {
	email := flag.String("email", "admin@medinventory.local", "email del superadmin")
	password := flag.String("password", "", "contraseña del superadmin (mínimo 8 caracteres)")
	name := flag.String("name", "Administrator", "nombre del superadmin")
	sample := flag.Bool("sample", false, "carga productos, clientes y una farmacia de ejemplo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	if *password == "" {
		log.Fatal().Msg("-password es obligatorio")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	svc := bootstrap.NewServices(bootstrap.PostgresRepositories(pool), bootstrap.Options{
		JWT:               auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		ExpiryWarningDays: cfg.Inventory.ExpiryWarningDays,
		Logger:            log,
	})

	admin, err := svc.Auth.CreateUser(ctx, dto.RegisterRequest{Email: *email, Password: *password, Name: *name}, entity.RoleSuperAdmin)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", *email).Msg("superadmin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear superadmin")
	default:
		log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("superadmin creado")
	}

	if !*sample {
		return
	}
	if err := seedSample(ctx, svc); err != nil {
		log.Fatal().Err(err).Msg("datos de ejemplo")
	}
	log.Info().Msg("datos de ejemplo cargados")
}

// seedSample no hace nada si ya hay productos.
func seedSample(ctx context.Context, svc *bootstrap.Services) error {
	existing, err := svc.Products.List(ctx, "", "", dto.PageRequest{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing.Items) > 0 {
		return nil
	}
	actor := dto.SystemActor
	expiry := func(months int) string { return dto.FormatDate(time.Now().AddDate(0, months, 0)) }

	products := []dto.CreateProductRequest{
		{Name: "Paracetamol 500mg", Category: "Medicines", Quantity: 240, Unit: "tablet", Manufacturer: "Genfar", BatchNumber: "PCM-2401", ExpiryDate: expiry(18), ReorderLevel: 100, CostPerUnit: decimal.RequireFromString("0.12")},
		{Name: "Amoxicillin 250mg", Category: "Medicines", Quantity: 40, Unit: "capsule", Manufacturer: "MK", BatchNumber: "AMX-1187", ExpiryDate: expiry(2), ReorderLevel: 50, CostPerUnit: decimal.RequireFromString("0.35")},
		{Name: "Sterile Gauze 10x10", Category: "Supplies", Quantity: 500, Unit: "pack", Manufacturer: "Tecnoquímicas", BatchNumber: "GZ-0099", ExpiryDate: expiry(36), ReorderLevel: 150, CostPerUnit: decimal.RequireFromString("0.80")},
		{Name: "Saline Solution 0.9% 500ml", Category: "Fluids", Quantity: 12, Unit: "bag", Manufacturer: "Baxter", BatchNumber: "SAL-5521", ExpiryDate: expiry(1), ReorderLevel: 30, CostPerUnit: decimal.RequireFromString("2.10")},
		{Name: "Nitrile Gloves M", Category: "Protective Equipment", Quantity: 900, Unit: "pair", Manufacturer: "Ansell", BatchNumber: "GLV-3310", ExpiryDate: expiry(24), ReorderLevel: 200, CostPerUnit: decimal.RequireFromString("0.09")},
	}
	for _, p := range products {
		if _, err := svc.Products.Create(ctx, actor, p); err != nil {
			return err
		}
	}

	clients := []dto.CreateClientRequest{
		{Name: "Emergency Department", Type: entity.ClientTypeDepartment, ContactPerson: "Dr. Rivera", DepartmentID: "ER-01"},
		{Name: "Intensive Care Unit", Type: entity.ClientTypeDepartment, ContactPerson: "Dr. Gómez", DepartmentID: "ICU-02"},
		{Name: "Laura Martínez", Type: entity.ClientTypePatient, ContactNumber: "+57 300 000 0000", PatientID: "P-000123"},
	}
	for _, c := range clients {
		if _, err := svc.Clients.Create(ctx, actor, c); err != nil {
			return err
		}
	}

	_, err = svc.Pharmacies.Create(ctx, actor, dto.CreatePharmacyRequest{
		Name:               "Central Pharmacy",
		ContactPerson:      "Andrés López",
		Email:              "billing@centralpharmacy.local",
		Address:            "Calle 10 # 20-30",
		RegistrationNumber: "PH-0001",
		CreditLimit:        decimal.NewFromInt(5000),
		PaymentTerms:       30,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}
