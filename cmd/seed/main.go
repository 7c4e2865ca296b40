// seed puebla la base de datos con instalaciones y un catálogo de material
// eléctrico de ejemplo. Borra los datos de stock existentes antes de insertar.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/electrostock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/electrostock-api/pkg/config"
	"github.com/jhoicas/electrostock-api/pkg/logger"
)

type seedItem struct {
	name      string
	quantity  int
	threshold int
}

var catalogue = []seedItem{
	// Câbles
	{"Câble XVB 3G2.5", 200, 100},
	{"Câble XVB 3G1.5", 150, 80},
	{"Câble XVB 5G2.5", 80, 50},
	{"Câble XVB 3G4", 120, 60},
	{"Câble XVB 3G6", 90, 40},
	{"Câble RO2V 3G2.5", 110, 70},
	{"Câble H07V-U 1.5mm²", 300, 150},
	{"Câble H07V-U 2.5mm²", 250, 120},

	// Disjoncteurs
	{"Disjoncteur 10A", 45, 30},
	{"Disjoncteur 16A", 8, 20},
	{"Disjoncteur 20A", 38, 25},
	{"Disjoncteur 32A", 22, 15},
	{"Disjoncteur différentiel 30mA", 18, 12},
	{"Disjoncteur différentiel 40A", 14, 10},

	// Prises et interrupteurs
	{"Prise 2P+T", 45, 50},
	{"Prise 2P+T encastrée", 65, 40},
	{"Prise USB double", 30, 20},
	{"Interrupteur simple", 70, 40},
	{"Interrupteur va-et-vient", 55, 30},
	{"Variateur LED", 25, 15},

	// Tableaux électriques
	{"Tableau électrique 2 rangées", 12, 8},
	{"Tableau électrique 3 rangées", 8, 5},
	{"Tableau électrique 4 rangées", 5, 3},

	// Gaines et conduits
	{"Gaine ICTA Ø16mm", 180, 100},
	{"Gaine ICTA Ø20mm", 140, 80},
	{"Gaine ICTA Ø25mm", 95, 50},
	{"Conduit IRL Ø16mm", 120, 70},
	{"Conduit IRL Ø20mm", 85, 50},

	// Boîtes de dérivation
	{"Boîte de dérivation 80x80", 90, 60},
	{"Boîte de dérivation 100x100", 75, 50},
	{"Boîte d'encastrement simple", 110, 70},
	{"Boîte d'encastrement double", 65, 40},

	// Luminaires
	{"Spot LED encastrable", 42, 30},
	{"Réglette LED 120cm", 28, 20},
	{"Hublot LED extérieur", 15, 10},
	{"Ampoule LED E27 12W", 95, 50},
	{"Ampoule LED GU10 6W", 78, 40},

	// Accessoires
	{"Domino électrique 3 plots", 200, 100},
	{"Wago 2 entrées", 250, 150},
	{"Wago 3 entrées", 180, 100},
	{"Wago 5 entrées", 120, 70},
	{"Serre-câbles 100mm", 300, 150},
	{"Serre-câbles 200mm", 200, 100},
	{"Ruban isolant", 48, 30},
	{"Serre-fils", 85, 50},

	// Matériel de protection
	{"Parafoudre type 2", 10, 8},
	{"Télérupteur 16A", 18, 12},
	{"Contacteur jour/nuit 40A", 12, 8},
	{"Minuterie d'escalier", 15, 10},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Limpia los datos existentes (el orden respeta las FK)
	for _, table := range []string{"proposal_items", "order_proposals", "stock_items", "installations"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("limpiar tabla")
		}
	}
	log.Info().Msg("datos existentes eliminados")

	now := time.Now()

	installations := []struct {
		id, name, address, description string
	}{
		{uuid.NewString(), "Chantier Rue de la Paix", "15 Rue de la Paix, 75002 Paris", "Rénovation électrique complète"},
		{uuid.NewString(), "Usine Leblanc", "Zone Industrielle, 69100 Villeurbanne", "Mise aux normes électriques"},
	}
	for _, ins := range installations {
		_, err := pool.Exec(ctx, `
			INSERT INTO installations (id, name, address, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)`,
			ins.id, ins.name, ins.address, ins.description, now,
		)
		if err != nil {
			log.Fatal().Err(err).Str("name", ins.name).Msg("insertar instalación")
		}
	}
	log.Info().Int("count", len(installations)).Msg("instalaciones creadas")

	// Artículos asociados a cada instalación
	assignments := map[string]string{
		"Câble XVB 3G2.5":               installations[0].id,
		"Disjoncteur 16A":               installations[0].id,
		"Prise 2P+T":                    installations[0].id,
		"Tableau électrique 3 rangées":  installations[1].id,
		"Disjoncteur différentiel 30mA": installations[1].id,
	}

	for _, item := range catalogue {
		var installationID any
		if id, ok := assignments[item.name]; ok {
			installationID = id
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO stock_items (id, name, quantity, threshold, installation_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			uuid.NewString(), item.name, item.quantity, item.threshold, installationID, now,
		)
		if err != nil {
			log.Fatal().Err(err).Str("name", item.name).Msg("insertar artículo")
		}
	}
	log.Info().Int("count", len(catalogue)).Msg("artículos creados en el stock")

	log.Info().Msg("seeding terminado")
}
