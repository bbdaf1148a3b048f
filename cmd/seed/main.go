// seed carga empleados, servicios y productos de demostración en el almacén configurado.
//
// Uso:
//
//	go run ./cmd/seed              carga los datos de demostración (omite colecciones con datos)
//	go run ./cmd/seed data.json    carga los datos desde un archivo JSON con el mismo formato
//	go run ./cmd/seed hash <pass>  imprime el hash bcrypt para AUTH_*_PASSWORD_HASH
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/internal/infrastructure/storage"
	"github.com/jhoicas/salon-pos/pkg/config"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

type seedData struct {
	Employees []entity.Employee `json:"employees"`
	Services  []entity.Service  `json:"services"`
	Products  []entity.Product  `json:"products"`
}

func demoData() seedData {
	return seedData{
		Employees: []entity.Employee{
			{Name: "Jane", Email: "jane@salon.local", Phone: "555-0101"},
			{Name: "Ana", Email: "ana@salon.local", Phone: "555-0102"},
			{Name: "Luis", Email: "luis@salon.local", Phone: "555-0103"},
		},
		Services: []entity.Service{
			{Name: "Haircut", Price: decimal.NewFromInt(500)},
			{Name: "Coloring", Price: decimal.NewFromInt(1200)},
			{Name: "Manicure", Price: decimal.NewFromInt(350)},
			{Name: "Beard trim", Price: decimal.NewFromInt(250)},
		},
		Products: []entity.Product{
			{Name: "Shampoo", Price: decimal.NewFromInt(180), Stock: 24},
			{Name: "Conditioner", Price: decimal.NewFromInt(200), Stock: 18},
			{Name: "Hair wax", Price: decimal.NewFromInt(150), Stock: 10},
		},
	}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash" {
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "uso: seed hash <password>")
			os.Exit(2)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(os.Args[2]), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(h))
		return
	}

	data := demoData()
	if len(os.Args) > 1 {
		raw, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer archivo: %v\n", err)
			os.Exit(1)
		}
		data = seedData{}
		if err := json.Unmarshal(raw, &data); err != nil {
			fmt.Fprintf(os.Stderr, "Decodificar JSON: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	m := catalog.NewManager(store, log, nil)
	if err := m.LoadAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Cargar catálogo: %v\n", err)
		os.Exit(1)
	}

	n, err := seed(ctx, m, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seed completo en %s: %d registros nuevos\n", storage.Label(cfg), n)
}

// seed agrega cada colección sólo si está vacía; devuelve cuántos registros creó.
func seed(ctx context.Context, m *catalog.Manager, data seedData) (int, error) {
	created := 0
	if len(m.ListEmployees()) == 0 {
		for _, e := range data.Employees {
			if _, err := m.AddEmployee(ctx, e); err != nil {
				return created, fmt.Errorf("empleado %q: %w", e.Name, err)
			}
			created++
		}
	}
	if len(m.ListServices()) == 0 {
		for _, s := range data.Services {
			if _, err := m.AddService(ctx, s); err != nil {
				return created, fmt.Errorf("servicio %q: %w", s.Name, err)
			}
			created++
		}
	}
	if len(m.ListProducts()) == 0 {
		for _, p := range data.Products {
			if _, err := m.AddProduct(ctx, p); err != nil {
				return created, fmt.Errorf("producto %q: %w", p.Name, err)
			}
			created++
		}
	}
	return created, nil
}
